// Package walletsdk is the typed HTTP client for the chillar wallet-core
// service. It mirrors the service's JSON surface one to one, so handlers and
// clients share the same request and response types.
//
// Unauthenticated operations (onboarding, unlocking) hang off Client.
// Everything gated by a wallet session token hangs off Session, created by
// a successful unlock:
//
//	client := walletsdk.NewClient("http://localhost:8080")
//	session, err := client.UnlockWithPIN(ctx, "61400000000", "4821")
//	if err != nil { ... }
//	receipt, err := session.Pay(ctx, walletsdk.PaymentRequest{...})
package walletsdk
