// Package intake is the HTTP client for the claims extraction service.
//
// # Contract
//
// A submission is one POST to <backend>/process carrying a multipart form
// with a single "file" part. A 2xx answer must be the claim payload:
//
//	{
//	  "extractedFields": {"policyNumber": "..." | null, ...},
//	  "missingFields": ["..."],
//	  "recommendedRoute": "...",
//	  "reasoning": "..."
//	}
//
// DecodeClaim rejects anything else with a *DecodeError instead of returning a
// partially populated ClaimResult. Non-2xx answers become a *RemoteError that
// keeps the status code and the body text, and requests that never produce a
// response become a *TransportError. Message renders any of these as the one
// line shown to the operator.
//
// # Retries
//
// There are none. Submit performs exactly one request per call; whoever
// wants another attempt calls it again.
package intake
