package services

// ServiceContainer aggregates the service facades handed to route
// registration and the job scheduler.
type ServiceContainer struct {
	Conversion ConversionSvcFacade
	Health     HealthSvcFacade
	RateSync   RateSyncSvcFacade
}
