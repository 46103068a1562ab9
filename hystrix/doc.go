// Package hystrix implements a per-dependency protected-call executor:
// bounded concurrency, execution timeouts, and a circuit breaker driven by
// failure-rate statistics over a rolling window.
//
// Calls are partitioned into dependency groups. Each group owns an
// execution pool, a circuit breaker, and a rolling metrics window; one
// group's saturation or outage never affects another group.
//
// Basic usage:
//
//	registry := hystrix.NewRegistry()
//	_ = registry.Configure("inventory", hystrix.Settings{
//	    CoreSize:         4,
//	    ExecutionTimeout: 500 * time.Millisecond,
//	})
//	d := hystrix.NewDispatcher(registry)
//
//	stock, err := hystrix.Execute(ctx, d, hystrix.Command[int]{
//	    Group: "inventory",
//	    Run:   func() (int, error) { return inventoryClient.Stock(sku) },
//	    Fallback: func() (int, error) { return 0, nil },
//	})
//
// Non-success outcomes surface as typed errors; discriminate them with
// errors.Is against ErrCircuitOpen, ErrTimeout, and ErrPoolFull.
package hystrix
