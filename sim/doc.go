// Package sim provides the discrete-event kernel that drives the RFP
// (Routing and Forwarding for Predictable events) simulator.
//
// # Reading Guide
//
// Start with these files to understand the kernel:
//   - capability.go: the Scheduler, Clock and Topology capabilities consumed by the core
//   - event_heap.go: deterministic event ordering (timestamp → event ID)
//   - simulator.go: the event loop and its horizon
//
// # Architecture
//
// The sim package defines the capabilities and the default heap-based engine;
// everything else lives in sub-packages:
//   - sim/rfp/: timeline model, predicted-event registry, link masking,
//     route-update batching and the controller that sequences them
//   - sim/analyzer/: outage and detection measurement, RFP vs. reactive
//   - sim/daemon/: routing-daemon command channel (vtysh) and simulated RIB
//   - sim/route/: tagged route updates and the node addressing plan
//   - sim/engine/: akita engine adapter implementing Scheduler and Clock
//   - sim/trace/: decision journal of timeline actions
//   - sim/telemetry/: prometheus counters
//
// All callbacks run on a single goroutine, strictly serialized by the
// engine. None of the core state is guarded by locks.
package sim
