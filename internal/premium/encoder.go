package premium

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// FeatureCount is the width of a feature vector.
const FeatureCount = 6

// FeatureVector is one model input row in training order:
// age, bmi, isSmoker, region code, children, gender code.
type FeatureVector [FeatureCount]float32

// Row returns the vector as a slice suitable for a model call.
func (fv FeatureVector) Row() []float32 {
	row := make([]float32, FeatureCount)
	copy(row, fv[:])
	return row
}

var (
	regionCodes = map[string]float32{
		"northeast": 0,
		"northwest": 1,
		"southeast": 2,
		"southwest": 3,
	}

	genderCodes = map[string]float32{
		"male":   0,
		"female": 1,
	}
)

// Encoder validates requests and maps them onto feature vectors. The code
// tables are fixed at construction and never written afterwards, so one
// Encoder is safe to share between goroutines.
type Encoder struct {
	regions map[string]float32
	genders map[string]float32
}

func NewEncoder() *Encoder {
	return &Encoder{
		regions: regionCodes,
		genders: genderCodes,
	}
}

// Encode checks req and builds its feature vector. Checks run in a fixed
// order and the first failure is returned: missing values, region, gender.
// A numeric field that cannot be converted yields a plain (non-validation)
// error.
func (e *Encoder) Encode(req Request) (FeatureVector, error) {
	// isSmoker is coerced before the presence check, so an absent value
	// means non-smoker rather than missing input.
	smoker := float32(0)
	if req.IsSmoker.Flag() {
		smoker = 1
	}

	for _, field := range []*Value{req.Age, req.BMI, req.Region, req.Children, req.Gender} {
		if err := validation.Validate(field, validation.NotNil.ErrorObject(ErrMissingValues)); err != nil {
			return FeatureVector{}, err
		}
	}

	if err := validation.Validate(req.Region, validation.By(oneOf(e.regions, ErrInvalidRegion))); err != nil {
		return FeatureVector{}, err
	}

	if err := validation.Validate(req.Gender, validation.By(oneOf(e.genders, ErrInvalidGender))); err != nil {
		return FeatureVector{}, err
	}

	region, _ := req.Region.text()
	gender, _ := req.Gender.text()

	age, err := number("age", req.Age)
	if err != nil {
		return FeatureVector{}, err
	}

	bmi, err := number("bmi", req.BMI)
	if err != nil {
		return FeatureVector{}, err
	}

	children, err := number("children", req.Children)
	if err != nil {
		return FeatureVector{}, err
	}

	return FeatureVector{age, bmi, smoker, e.regions[region], children, e.genders[gender]}, nil
}

func number(name string, v *Value) (float32, error) {
	f, err := v.Float32()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return f, nil
}

func oneOf(codes map[string]float32, errObj validation.Error) validation.RuleFunc {
	return func(value interface{}) error {
		v, _ := value.(*Value)
		if v == nil {
			return errObj
		}

		label, ok := v.text()
		if !ok {
			return errObj
		}

		if _, known := codes[label]; !known {
			return errObj
		}

		return nil
	}
}
