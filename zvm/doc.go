// Package zvm is a minimal client for the ZVM management REST API: just
// the calls the reconciliation flow needs, with Keycloak client-credentials
// auth handled internally.
//
// Every call takes a context and returns transport failures wrapped in
// *vpgerrors.TransportError without reinterpretation. The client performs
// no retries beyond a single token refresh on 401; callers that want retry
// policy layer it on top.
package zvm
