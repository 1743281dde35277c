package server

// Server объединяет специфичные HTTP сервера, отвечающие за обработку конкретных сущностей.
type Server struct {
	CatalogServer
	CartServer
	SubmissionServer
	TrackingServer
}

func NewServer(
	catalogServer CatalogServer,
	cartServer CartServer,
	submissionServer SubmissionServer,
	trackingServer TrackingServer,
) Server {
	return Server{
		CatalogServer:    catalogServer,
		CartServer:       cartServer,
		SubmissionServer: submissionServer,
		TrackingServer:   trackingServer,
	}
}
