// Package imagecache preloads the images a map references.
//
// Preload starts one batch of loads and reports completion through a
// single callback once every image of the batch has settled, loaded or
// failed. Only one batch is in flight at a time; overlapping requests are
// queued and start, in arrival order, after the previous batch's callback
// has returned. Resolved images are never evicted, and a failed image is
// cached as a nil entry.
//
// Loads run in background goroutines but all cache state, including the
// completion callbacks, is driven by the owner through Wait:
//
//	ic := imagecache.New(imagecache.HTTPLoader{})
//	ic.Preload(map[string]string{"1": "https://zabbix/imgstore.php?iconid=1"}, func() {
//	    img, _ := ic.Get("1")
//	    ...
//	})
//	err := ic.Wait(ctx)
package imagecache
