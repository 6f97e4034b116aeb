// Package observability provides OpenTelemetry tracing and metrics for
// remotekit. The proxy and iterator record spans and instruments through the
// global otel providers, which stay no-op until an application initializes
// them:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("my-client"))
//	defer tp.Shutdown(ctx)
//
//	mp, err := observability.InitMeter(ctx, observability.DefaultMeterConfig("my-client"))
//	defer mp.Shutdown(ctx)
package observability
