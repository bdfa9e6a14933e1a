package modkit

import "reviewsentry/internal/modkit/module"

// Module is the surface api.Mount needs from every module
type Module = module.Module
