// Package harness runs YAML scenarios against a real platform.
//
// A scenario optionally seeds the platform from a CUE file, runs setup
// actions that must succeed, then runs flow steps whose outcome (ok or a
// platform error code) and result fields are checked against the step's
// expect clause. Every step is recorded in the trace. Assertions then check
// the trace and the final platform state.
//
//	name: endorse_rules
//	description: endorsements cannot be endorsed
//	setup:
//	  - action: create_account
//	    args: {handle: alice}
//	flow:
//	  - invoke: create_post
//	    args: {handle: alice, message: hello}
//	    expect: {case: ok, result: {id: 1}}
//	  - invoke: endorse_post
//	    args: {handle: alice, id: 1}
//	  - invoke: endorse_post
//	    args: {handle: alice, id: 2}
//	    expect: {case: NOT_ACTIONABLE_POST}
//	assertions:
//	  - type: final_state
//	    expect: {original: 1, endorsement: 1}
//
// Each scenario runs on a fresh platform with a discarded log and a private
// temporary directory for save_load steps.
package harness
