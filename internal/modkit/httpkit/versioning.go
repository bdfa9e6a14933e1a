package httpkit

import (
	"net/http"
	"strings"
)

// MountAPI mounts a subrouter under /api/{version}, applies any per-scope middleware,
// then invokes mount to register routes on that scoped router. An empty version mounts at /api
//
// example:
//
//	httpkit.MountAPI(r, "v1", httpkit.CommonStack(), func(api httpkit.Router) {
//	  auth.MountRoutes(api)
//	})
func MountAPI(r Router, version string, mw []func(http.Handler) http.Handler, mount func(Router)) {
	prefix := "/api"
	if ver := strings.Trim(version, "/"); ver != "" {
		prefix += "/" + ver
	}
	r.Route(prefix, func(api Router) {
		if len(mw) > 0 {
			api.Use(mw...)
		}
		mount(api)
	})
}

// MountAPIRoot mounts unversioned routes directly under /api
func MountAPIRoot(r Router, mw []func(http.Handler) http.Handler, mount func(Router)) {
	MountAPI(r, "", mw, mount)
}
