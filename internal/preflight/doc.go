// Package preflight provides readiness checks for the directories and
// external binaries a batch depends on.
//
// The "audioconv check" command renders RunAll and CheckSystemDeps results
// without converting anything, so a misconfigured tool or an unwritable
// output directory is caught before a long batch starts.
package preflight
