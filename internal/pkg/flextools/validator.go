package flextools

import (
	"fmt"
	"math"
	"strings"
)

// Validator 严格 schema 校验，不会静默接受越界值
type Validator struct {
	sliderMax int
}

// NewValidator 创建校验器，sliderMax<=0 时使用 DefaultSliderMax
func NewValidator(sliderMax int) *Validator {
	if sliderMax <= 0 {
		sliderMax = DefaultSliderMax
	}
	return &Validator{sliderMax: sliderMax}
}

// SliderMax 当前配置的滑块上限
func (v *Validator) SliderMax() int {
	return v.sliderMax
}

// Validate 校验候选值，收集全部违规字段后一次性返回 *ValidationError
func (v *Validator) Validate(in RawGenerationInput) (GenerationRequest, error) {
	verr := &ValidationError{}
	for field, msgs := range in.TypeErrors {
		for _, msg := range msgs {
			verr.add(field, msg)
		}
	}

	req := GenerationRequest{
		Platform:  checkPlatform(verr, in.Platform),
		Tone:      checkTone(verr, in.Tone),
		Niche:     in.Niche,
		Tools:     in.Tools,
		MRR:       in.MRR,
		Followers: in.Followers,
	}
	req.Arrogance = checkRange(verr, "arrogance", in.Arrogance, v.sliderMax)
	req.Buzzwords = checkRange(verr, "buzzwords", in.Buzzwords, v.sliderMax)
	req.FakeMetrics = checkRange(verr, "fakeMetrics", in.FakeMetrics, v.sliderMax)
	if in.SpiceLevel != nil {
		spice := checkRange(verr, "spiceLevel", *in.SpiceLevel, SpiceMax)
		req.SpiceLevel = &spice
	}

	if !verr.empty() {
		return GenerationRequest{}, verr
	}
	return req, nil
}

// ValidateFreeform 校验自由模式输入
func (v *Validator) ValidateFreeform(in RawFreeformInput) (FreeformRequest, error) {
	verr := &ValidationError{}
	for field, msgs := range in.TypeErrors {
		for _, msg := range msgs {
			verr.add(field, msg)
		}
	}

	req := FreeformRequest{
		Prompt:   in.Prompt,
		Platform: checkPlatform(verr, in.Platform),
		Tone:     checkTone(verr, in.Tone),
	}
	if _, typed := in.TypeErrors["prompt"]; !typed && strings.TrimSpace(in.Prompt) == "" {
		verr.add("prompt", "is required")
	}

	if !verr.empty() {
		return FreeformRequest{}, verr
	}
	return req, nil
}

func checkPlatform(verr *ValidationError, s string) Platform {
	if s == "" {
		verr.add("platform", "is required")
		return ""
	}
	for _, p := range Platforms {
		if s == string(p) {
			return p
		}
	}
	verr.add("platform", "must be one of "+joinEnum(Platforms))
	return ""
}

func checkTone(verr *ValidationError, s string) Tone {
	if s == "" {
		verr.add("tone", "is required")
		return ""
	}
	for _, t := range Tones {
		if s == string(t) {
			return t
		}
	}
	verr.add("tone", "must be one of "+joinEnum(Tones))
	return ""
}

func checkRange(verr *ValidationError, field string, n float64, max int) int {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		verr.add(field, "must be a finite number")
		return 0
	}
	if n != math.Trunc(n) {
		verr.add(field, "must be an integer")
		return 0
	}
	if n < 0 || n > float64(max) {
		verr.add(field, fmt.Sprintf("must be between 0 and %d", max))
		return 0
	}
	return int(n)
}

func joinEnum[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}
