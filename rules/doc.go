// Package rules detects estate-planning gaps in a client's accounts.
//
// Evaluate runs the built-in rule sets and returns findings ordered by
// severity:
//
//   - TFSA: missing designation (T1), ex-spouse successor holder (T3),
//     deceased successor holder or beneficiary (T6)
//   - RRSP: missing designation (R1), ex-spouse successor annuitant (R3),
//     deceased beneficiary (R6)
//   - RRIF: deceased successor annuitant or beneficiary (R6), estate
//     liquidity (R7)
//   - Life events: married without a spouse designation (L1), divorced
//     with an ex-spouse still named (L2), no will (L0a)
//   - Portfolio: no designation on any account (C5)
//
// Only explicit values trigger the ex-spouse and deceased checks; a flag
// that was never recorded is treated as unknown, not as false.
//
// Classify reduces an account's findings to a coarse RiskLevel for display.
//
// # Engine
//
// Engine wraps the same rules with structured logging, OpenTelemetry
// instrumentation, optional extended rules and custom Checkers:
//
//	engine, err := rules.New(
//		rules.WithLogger(logger),
//		rules.WithExtendedRules(),
//		rules.WithChecker(policies),
//	)
//	if err != nil {
//		return err
//	}
//	findings, err := engine.Evaluate(ctx, c)
package rules
