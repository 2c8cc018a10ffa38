// Package estate is the root of the estate-planning gap engine.
//
// The engine reads a client's registered accounts (TFSA, RRSP, RRIF) and
// their successor and beneficiary designations, and reports the gaps that
// would send money to the wrong person or into the estate on death.
//
// # Packages
//
//   - client: the client record, its decoding from JSON/YAML and catalogs
//   - input: tri-state lookups over decoded records (absent, null, value)
//   - finding: findings, severities, ordering, filters and export
//   - rules: the rule engine, risk classification and instrumentation
//   - policy: firm-specific rules written as CEL expressions in YAML
//   - cmd/gapcheck: command-line front end
//
// # Getting Started
//
//	c, err := client.Parse(data)
//	if err != nil {
//		return err
//	}
//	findings, err := rules.Evaluate(c)
//	if err != nil {
//		return err
//	}
//	fmt.Print(finding.RenderText(findings))
//
// # Errors
//
// Every package returns *Error values that wrap one of the sentinel errors,
// so callers can branch with errors.Is:
//
//	if errors.Is(err, estate.ErrInvalidInput) {
//		// reject the record
//	}
package estate
