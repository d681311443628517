// Package bucketing provides deterministic micropercent bucketing for
// percentage-based conditions. It hashes a per-condition seed together
// with a per-subject randomization ID into a bucket in
// [0, 100_000_000), so that:
//   - the same subject always lands in the same bucket for a given seed
//     (deterministic across runs and machines)
//   - buckets are close to uniformly distributed over many subjects
//   - different seeds bucket the same subject independently, so separate
//     percent conditions roll out to uncorrelated populations
//
// The hash is xxHash64 of the UTF-8 bytes of "seed.randomizationID".
// Bucket parity with evaluators built on a different hash function is
// not guaranteed.
package bucketing

import (
	"github.com/cespare/xxhash/v2"

	"github.com/TimurManjosov/goremoteconfig/internal/condition"
)

// Bucket returns the deterministic micropercent bucket, in
// [0, condition.TotalMicroPercent), for the given seed and
// randomization ID. It is a pure function with no state.
func Bucket(seed, randomizationID string) uint32 {
	key := seed + "." + randomizationID
	return uint32(xxhash.Sum64String(key) % condition.TotalMicroPercent)
}
