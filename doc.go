/*
Package fetchable provides generic fetch capabilities with type-erased
handles and a decoding network client.

Key features:
  - Small, composable interfaces
  - Type-safe operations with generics
  - Exactly-one-outcome contract for every fetch
  - Functional options for configuration
  - A strict failure taxonomy for network decoding

Basic usage:

	// Any function producing one value is a capability
	f := fetchable.FetchFunc[int](func(ctx context.Context) (int, error) {
		return 42, nil
	})

	// Erase the concrete implementation behind a uniform handle
	handle := fetchable.NewAny[int](f)
	n, err := handle.Fetch(ctx)

Decoding network wrapper:

	client := fetchable.NewClient(
		fetchable.WithTimeout(10*time.Second),
		fetchable.WithRetry(3, time.Second),
	)

	user, resp, err := fetchable.Get[User](ctx, client, "https://api.example.com/users/1")

Every call reports exactly one of: a decoded value, a transport failure,
a bad-status failure (carrying the response), a missing-body failure, or
a decode failure. Checks run in that order and the first failure wins.

Asynchronous completion:

	results := fetchable.Go(ctx, fetchable.Fetcher[User](client, url))
	r := <-results // exactly one Result[User]

Type-safe caching:

	cache := fetchable.NewCache()
	cached := fetchable.Cached[User](cache, "user:1", fetchable.Fetcher[User](client, url))
*/
package fetchable
