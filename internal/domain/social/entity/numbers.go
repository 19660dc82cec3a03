package entity

// NumberKind selects one of the number series exposed by the upstream API
type NumberKind string

const (
	NumberKindPrime     NumberKind = "p"
	NumberKindFibonacci NumberKind = "f"
	NumberKindEven      NumberKind = "e"
	NumberKindRandom    NumberKind = "r"
)

// NumberKinds lists every supported kind in a stable order
var NumberKinds = []NumberKind{
	NumberKindPrime,
	NumberKindFibonacci,
	NumberKindEven,
	NumberKindRandom,
}

// Path returns the upstream resource path for the kind
func (k NumberKind) Path() (string, error) {
	switch k {
	case NumberKindPrime:
		return "/primes", nil
	case NumberKindFibonacci:
		return "/fibo", nil
	case NumberKindEven:
		return "/even", nil
	case NumberKindRandom:
		return "/rand", nil
	default:
		return "", ErrUnknownNumberKind
	}
}

// Name returns the long name of the kind
func (k NumberKind) Name() string {
	switch k {
	case NumberKindPrime:
		return "prime"
	case NumberKindFibonacci:
		return "fibonacci"
	case NumberKindEven:
		return "even"
	case NumberKindRandom:
		return "random"
	default:
		return string(k)
	}
}

// ParseNumberKind accepts either the short code ("p") or the long name ("prime")
func ParseNumberKind(s string) (NumberKind, error) {
	switch s {
	case "p", "prime", "primes":
		return NumberKindPrime, nil
	case "f", "fibonacci", "fibo":
		return NumberKindFibonacci, nil
	case "e", "even":
		return NumberKindEven, nil
	case "r", "random", "rand":
		return NumberKindRandom, nil
	default:
		return "", ErrUnknownNumberKind
	}
}

// NumberSeries is a fetched number series with its arithmetic mean
type NumberSeries struct {
	Kind    NumberKind `json:"kind"`
	Numbers []int      `json:"numbers"`
	Average float64    `json:"average"`
}

// Average returns the arithmetic mean of nums, 0 for an empty slice
func Average(nums []int) float64 {
	if len(nums) == 0 {
		return 0
	}
	var sum int64
	for _, n := range nums {
		sum += int64(n)
	}
	return float64(sum) / float64(len(nums))
}
