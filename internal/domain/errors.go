package domain

import "errors"

var (
	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrTooManyStores is returned when the candidate store pool exceeds the
	// optimizer's hard ceiling and the combination search would blow up
	ErrTooManyStores = errors.New("too many candidate stores to optimize")

	// ErrNoDeals is returned when the deal feed has nothing for the search,
	// or the optimizer finds zero valid combinations
	ErrNoDeals = errors.New("no recent deals found")

	// ErrDealFeedFailure is returned when the remote deal-feed RPC fails
	ErrDealFeedFailure = errors.New("deal feed request failed")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrCartNotFound is returned when a saved cart ID does not exist
	ErrCartNotFound = errors.New("saved cart not found")
)
