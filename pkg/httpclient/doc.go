// Package httpclient performs the JSON POST requests issued by adaptor
// operations and converts responses into domain.Response values.
package httpclient
