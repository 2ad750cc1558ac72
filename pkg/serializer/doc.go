// Package serializer handles output serialization for CLI results and HTTP
// responses. CLI output supports JSON, YAML, and table formats; HTTP
// responses are always JSON.
package serializer
