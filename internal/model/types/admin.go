package types

type PurgeCacheRequest struct {
	Name string `json:"name" validate:"required"`
}

type PurgeCacheResponse struct {
	Purged string `json:"purged"`
}

type CacheNamesResponse struct {
	Names []string `json:"names"`
}
