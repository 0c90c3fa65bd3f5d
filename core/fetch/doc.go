// Package fetch resolves asset URLs to bytes.
//
// A Router picks a Fetcher by URL scheme:
//
//   - s3://<key>       object in the configured storage bucket
//   - http://, https:// plain HTTP GET
//   - anything else    path on an afero filesystem, relative to a base directory
//
// Concurrent fetches of the same URL are collapsed into one request, which keeps
// running when one of its callers gives up. Results can
// be cached in process (MemoryCache) or in Redis (RedisCache); both wrap another
// Fetcher and fall back to it on a miss.
//
// # Usage
//
//	router := fetch.NewRouter(
//	    fetch.NewFileFetcher(afero.NewOsFs(), "./assets"),
//	    fetch.WithRoute("s3", fetch.NewStorageFetcher(client, "assets")),
//	    fetch.WithRoute("http", fetch.NewHTTPFetcher(10*time.Second)),
//	)
//	data, err := router.Fetch(ctx, "s3://textures/grass.png")
package fetch
