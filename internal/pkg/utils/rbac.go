package utils

import (
	"net/url"

	"github.com/casbin/casbin/v2/util"
)

// PathMatch matches a request path against a policy pattern using
// keyMatch2 syntax (":param" segments and a trailing "*"). The query string
// of the request is ignored.
func PathMatch(requestPath, policyPath string) bool {
	requestURL, err := url.Parse(requestPath)
	if err != nil {
		return false
	}
	return util.KeyMatch2(requestURL.Path, policyPath)
}
