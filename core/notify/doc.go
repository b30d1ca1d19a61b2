// Package notify tells the downstream storefront service which product images to pull.
//
// After product sync the orchestrator posts one entry per fetched product,
// pairing the product id with its catalog images URL. The token is sent as the raw
// Authorization header value. 200 and 204 count as success; anything else is
// logged with the response body and returned as *StatusError.
package notify
