// Package rpc is the gateway between deskctl and the business-application
// server.
//
// # Overview
//
// Every server interaction goes through the Gateway interface:
//
//   - Call invokes a whitelisted procedure by its fully-qualified name with a
//     flat map of scalar arguments (POST /api/method/<procedure>).
//   - CallDoc invokes a method on a loaded document (run_doc_method).
//   - GetDoc / UpdateDoc read and write a document through the resource API.
//
// HTTPGateway is the production implementation. It authenticates with an
// API key/secret token, tags each request with an X-Request-ID and logs
// the outcome.
//
// # Results
//
// A call either fails at transport/framework level (*TransportError: the
// network, a non-2xx status or a server exception) or returns an Envelope.
// Typed payloads are decoded with Decode; a payload whose success
// discriminator says "no", or that is missing altogether, becomes an
// *ApplicationError. The two payload conventions seen on the server
// ({success: bool} and {status: "success"}) are modelled by SuccessReply
// and StatusReply; each response type embeds the one its procedure uses.
//
// # Concurrency
//
// Dispatch runs a call on its own goroutine and delivers the result to a
// callback exactly once. Calls are independent: there is no ordering, no
// retry and no de-duplication. Gateway implementations are safe for
// concurrent use.
package rpc
