// Package client defines the client record evaluated by the estate-gap
// engine: the client's marital and will status, their accounts and the
// successor and beneficiary designations on each account.
//
// Records usually arrive as JSON or YAML from an external catalog. Decode
// and ParseCatalog convert them into typed values and reject malformed input
// (accounts that are not a list, non-numeric balances, unknown marital
// statuses) with errors matching estate.ErrInvalidInput. Unknown
// relationship labels are kept and reported by UnrecognizedRelationships.
//
// Optional designation flags are *bool so that "not recorded" stays
// distinguishable from an explicit false. Account, Designation, Client and
// Partner implement input.Keyed, which lets rules read nested optional fields
// through input.Lookup with the same keys used in the record files.
package client
