// Package planfinder provides a Go client for the planfinder business
// plan search service backed by Redis with the FT search module, or by
// an embedded SQLite database.
//
//	client, _ := planfinder.New(ctx, planfinder.WithRedis("localhost:6379", ""))
//	defer client.Close()
//
//	p, _ := client.Plan(ctx, "plan-42")
//
//	page, _ := client.Search(ctx, planfinder.Query{
//	    Industry:      "fintech",
//	    MarketSizeMin: planfinder.Float(1_000_000),
//	    Sort:          "popularity_desc",
//	})
//
// The SQLite driver trades indexed matching for substring matching: every
// filter, including numeric bounds, becomes a LIKE predicate. See Query
// for details.
package planfinder
