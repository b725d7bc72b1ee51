// Package venmo is an unofficial client for the Venmo account web API.
//
// The API is private and built for the browser, so the client has to earn a
// session the way the web app does: submit credentials, expect an MFA
// challenge, harvest CSRF material from the bank-verification page, answer
// the challenge with a bank account number, and register device data. See
// [Client.Login]. After a successful login the client exposes identity
// lookup, the transaction feed, payment eligibility, funding-instrument
// discovery, person search, and payment submission.
//
// A Client drives one account and is meant for sequential use; nothing in
// it is guarded for concurrency. Construct one Client per account.
//
// The upstream surface is unstable. Endpoints drift, required cookies vary
// per endpoint, and the CSRF token rides in two redundant headers. Those
// quirks are isolated in the handshake and the per-operation header
// assembly so callers never see them.
package venmo
