package endpoints

// Endpoints collects all service endpoints wired into the HTTP router.
type Endpoints struct {
	SearchEndpoint SearchEndpoint
}
