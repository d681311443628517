package bucketing

import (
	"math"
	"strconv"
	"testing"

	"github.com/TimurManjosov/goremoteconfig/internal/condition"
)

func TestBucket_Deterministic(t *testing.T) {
	// Same inputs should always return the same bucket
	b1 := Bucket("seed-1", "user-123")
	b2 := Bucket("seed-1", "user-123")
	if b1 != b2 {
		t.Errorf("Bucket is not deterministic: got %d and %d", b1, b2)
	}
}

func TestBucket_InRange(t *testing.T) {
	for i := 0; i < 1000; i++ {
		bucket := Bucket("range-seed", "user-"+strconv.Itoa(i))
		if bucket >= condition.TotalMicroPercent {
			t.Fatalf("Bucket %d out of range [0, %d)", bucket, condition.TotalMicroPercent)
		}
	}
}

func TestBucket_SeedIndependence(t *testing.T) {
	// Different seeds should bucket the same subject differently for
	// almost all subjects.
	same := 0
	total := 10000
	for i := 0; i < total; i++ {
		id := "user-" + strconv.Itoa(i)
		if Bucket("seed-a", id) == Bucket("seed-b", id) {
			same++
		}
	}
	// Collision odds per subject are 1e-8; even 5 matches would be suspicious.
	if same > 5 {
		t.Errorf("Expected nearly zero cross-seed collisions, got %d/%d", same, total)
	}
}

func TestBucket_UniformDistribution(t *testing.T) {
	// A 10% micropercent slice should capture ~10% of subjects, within
	// 3 standard deviations for binomial sampling.
	const (
		threshold = condition.TotalMicroPercent / 10
		total     = 100000
	)

	matched := 0
	for i := 0; i < total; i++ {
		if Bucket("dist-seed", "subject-"+strconv.Itoa(i)) < threshold {
			matched++
		}
	}

	expected := float64(total) * 0.10
	stddev := math.Sqrt(float64(total) * 0.10 * 0.90)
	tolerance := 3 * stddev // ~284.6
	if math.Abs(float64(matched)-expected) > tolerance {
		t.Errorf("Expected %d +/- %.0f matches at 10%%, got %d", int(expected), tolerance, matched)
	}
}

func TestBucket_UniformDistributionHalves(t *testing.T) {
	// Sanity: halves of the bucket space should each hold ~50%.
	const total = 10000
	low := 0
	for i := 0; i < total; i++ {
		if Bucket("halves-seed", "subject-"+strconv.Itoa(i)) < condition.TotalMicroPercent/2 {
			low++
		}
	}

	percentage := float64(low) / float64(total) * 100
	if percentage < 45 || percentage > 55 {
		t.Errorf("Expected ~50%% in lower half, got %.2f%% (%d/%d)", percentage, low, total)
	}
}
