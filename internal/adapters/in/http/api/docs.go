// Package api holds the HTTP contract: the OpenAPI document in openapi.yaml,
// the request and response models it defines, and ServerInterface with the
// echo wrapper that binds path and query parameters before calling it.
//
// Models follow the document's field names and oapi-codegen naming (Id,
// ServiceId). Amounts travel as decimal strings.
package api
