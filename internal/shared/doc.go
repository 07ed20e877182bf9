// Package shared holds cross-cutting helpers used by multiple packages.
// Subpackage testutil provides test-only infrastructure.
package shared
