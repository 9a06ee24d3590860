// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"javelin-cli/internal/platform"
	"javelin-cli/internal/release"

	"github.com/charmbracelet/log"
)

// maxStrategyProbes caps how many strategies one resolution pass may walk.
// Directory-tree probing is the launcher's only unbounded-latency operation,
// so excess common-location roots are skipped once the cap is reached.
const maxStrategyProbes = 4

// VersionGate answers whether the installation owning a shared library
// satisfies the required major version. It matches release.Check.
type VersionGate func(libPath string, requiredMajor int) release.Result

// Resolver pulls candidates from the ordered strategy list one at a time,
// applying the probe cap and the version gate. It is consumed by a single
// orchestration loop and is not safe for concurrent use.
type Resolver struct {
	strategies []Strategy
	profile    platform.Profile
	required   int
	gate       VersionGate
	logger     *log.Logger

	next            int
	probes          int
	sawIncompatible bool
}

// NewResolver creates a resolver over the given strategies. A nil gate
// defaults to release.Check.
func NewResolver(strategies []Strategy, profile platform.Profile, requiredMajor int, gate VersionGate, logger *log.Logger) *Resolver {
	if gate == nil {
		gate = release.Check
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Resolver{
		strategies: strategies,
		profile:    profile,
		required:   requiredMajor,
		gate:       gate,
		logger:     logger,
	}
}

// Next returns the next version-compatible candidate in strategy priority
// order, or false when the strategy list (or the probe cap) is exhausted.
//
// The gate discards a candidate unless the oracle answers Compatible, with
// one exception: when no version requirement is set, missing metadata cannot
// veto the candidate.
func (r *Resolver) Next() (Candidate, bool) {
	for r.next < len(r.strategies) && r.probes < maxStrategyProbes {
		strategy := r.strategies[r.next]
		r.next++
		r.probes++

		candidate, ok := strategy.Locate(r.profile)
		if !ok {
			r.logger.Debug("no runtime found", "strategy", strategy.Kind, "root", strategy.Root)
			continue
		}

		switch result := r.gate(candidate.LibPath, r.required); result {
		case release.Compatible:
			r.logger.Debug("candidate accepted", "strategy", candidate.Strategy, "lib", candidate.LibPath)
			return candidate, true
		case release.Unknown:
			if r.required == 0 {
				r.logger.Debug("candidate accepted without metadata", "strategy", candidate.Strategy, "lib", candidate.LibPath)
				return candidate, true
			}
			r.logger.Debug("candidate rejected: no readable version metadata", "lib", candidate.LibPath, "required", r.required)
			r.sawIncompatible = true
		case release.Incompatible:
			r.logger.Debug("candidate rejected: version too old", "lib", candidate.LibPath, "required", r.required)
			r.sawIncompatible = true
		}
	}
	return Candidate{}, false
}

// SawIncompatible reports whether any candidate was found but rejected on
// version grounds, letting the orchestrator distinguish "nothing installed"
// from "installed but too old".
func (r *Resolver) SawIncompatible() bool {
	return r.sawIncompatible
}
