// Package telemetry wires OpenTelemetry tracing for processes that do
// not configure a provider themselves.
//
// Task functions in the root package create spans through the global
// tracer provider, which is a no-op until one is installed. Install
// builds a provider around a caller-supplied span exporter, registers
// it globally, and returns a shutdown hook:
//
//	shutdown, err := telemetry.Install(ctx, exporter)
//	if err != nil {
//		return err
//	}
//	defer shutdown(ctx)
package telemetry
