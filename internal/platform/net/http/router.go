package http

import stdhttp "net/http"

// Handler is a plain handler func
type Handler = func(stdhttp.ResponseWriter, *stdhttp.Request)

// Router is the subset of chi the modules mount against.
// Group and Route hand back the same interface so modules never see chi
type Router interface {
	Use(mw ...func(stdhttp.Handler) stdhttp.Handler)
	Group(fn func(Router))
	Route(pattern string, fn func(Router))

	Get(path string, h Handler)
	Post(path string, h Handler)
	Handle(path string, h stdhttp.Handler)
}
