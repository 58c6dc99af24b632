// Package store defines the persistence interfaces and sentinel errors that
// decouple the HTTP layer from the concrete database implementation. The
// interfaces are implemented by the postgres platform package and by
// lightweight mocks in tests.
package store
