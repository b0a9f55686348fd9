// Package rfp implements Routing and Forwarding for Predictable events: the
// timeline model, the predicted-event registry (TMM), the link state tracker
// (LDM), the route update batcher (RMM) and the controller that sequences
// them against a sim.Scheduler.
//
// # Timeline
//
// A predicted failure at T0 is handled in four steps:
//
//	T1 = T0 - Tc - 2dT   mask the link (BLD) and start batching updates (BFU)
//	T2 = T0 - dT         flush the batch and reconverge
//	T0                   the physical failure; routes are already switched
//	T3 = T0 + dT         resume normal detection
//
// Between T1 and T3 the routing daemon never sees the real state of the
// link. Between T1 and T2 every route update is queued instead of installed.
//
// Everything in this package runs on the scheduler's single thread; none of
// the types lock.
package rfp
