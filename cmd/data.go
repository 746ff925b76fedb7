package cmd

import (
	"context"
	"log"
	"strconv"

	"github.com/grexie/iris/pkg/config"
	"github.com/grexie/iris/pkg/dataset"
)

func loadDataset(ctx context.Context, params config.Params) (*dataset.Dataset, error) {
	var fetcher *dataset.Fetcher
	if dataset.IsRemote(params.Data) {
		var cache *dataset.Cache
		if params.Cache != "" {
			if c, err := dataset.OpenCache(params.Cache); err != nil {
				log.Printf("dataset cache disabled: %v", err)
			} else {
				defer c.Close()
				cache = c
			}
		}
		fetcher = dataset.NewFetcher(cache)
	}

	return dataset.LoadSource(ctx, params.Data, fetcher, dataset.IrisSchema)
}

func classNames(d *dataset.Dataset, classes int) []string {
	names := make([]string, classes)
	for i := range names {
		if i < len(d.Classes) {
			names[i] = d.Classes[i]
		} else {
			names[i] = strconv.Itoa(i)
		}
	}
	return names
}
