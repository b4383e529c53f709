// Package feed holds the social feed domain: users, posts, comments and
// likes, the Store they persist through, and the Service implementing the
// use cases (login, create post, add comment, toggle like, list posts).
//
// GormStore backs production; memstore.Store is the in-memory double used
// in tests. Seed installs the demo dataset, including the test/test account.
package feed
