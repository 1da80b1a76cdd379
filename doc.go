/*
Package dydra provides an SDK and a CLI to manage RDF repositories hosted on dydra.com.

Accounts and repositories are designated by specs, "account" or "account/repository",
resolved into typed resources by package pkg/resource. Operations on resources are
dispatched as JSON-RPC calls (pkg/rpc). Long-running operations return a process
(pkg/process), which may be polled or waited for. RDF descriptions of resources are
fetched over HTTP as N-Triples (pkg/fetch).

The dydra command line tool is located in cmd/dydra.
*/
package dydra
