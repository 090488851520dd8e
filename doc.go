// Package koywe is a client for the Koywe billing and e-invoicing API.
//
// A Client authenticates with the password grant, keeps the resulting token
// fresh, and exposes the documents and accounts resources:
//
//	c, err := koywe.FromEnvironment(ctx, true)
//	if err != nil {
//		return err
//	}
//	list, err := c.Documents().List(ctx, endpoints.ListOptions{Limit: 5})
//
// Errors returned by API calls are *apierr.Error values and can be matched
// with errors.Is against the apierr sentinels.
package koywe
