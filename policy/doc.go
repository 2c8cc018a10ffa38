// Package policy lets advisors add their own gap checks without code
// changes. Each rule pairs a CEL condition with the finding it produces:
//
//	name: firm-policies
//	rules:
//	  - id: X1
//	    severity: MEDIUM
//	    account_types: [RRSP, RRIF]
//	    when: account.balance > 250000.0 && !has(account.beneficiary_contingent)
//	    issue: Large registered account without a contingent beneficiary
//	    consequence: A failed primary designation sends the full value to the estate.
//	    action: Name a contingent beneficiary.
//
// Account rules see the "account" and "client" variables and produce one
// finding per matching account. Client rules (scope: client) see "client"
// and produce a portfolio finding. Variables use the same keys as client
// records; unrecorded optional values are absent, so use has() to test them.
//
// A compiled Set plugs into the engine with rules.WithChecker.
package policy
