package facematch

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

const systemPrompt = `You are a strict face verification system. You receive two photos.
The first is a candidate photo, the second is a reference photo of one enrolled person.
Respond with a JSON object only:
{"faces_in_candidate": <int>, "reference_usable": <bool>, "same_person": <bool>, "confidence": <float 0..1>}
faces_in_candidate is the number of distinct human faces visible in the candidate photo.
reference_usable is false when the reference photo contains no clear single face.
same_person compares the single candidate face against the reference face.`

type verdict struct {
	FacesInCandidate int     `json:"faces_in_candidate"`
	ReferenceUsable  bool    `json:"reference_usable"`
	SamePerson       bool    `json:"same_person"`
	Confidence       float64 `json:"confidence"`
}

// OpenAIVerifier performs 1:1 face verification through a vision chat model.
type OpenAIVerifier struct {
	client    *openai.Client
	model     string
	threshold float64
}

func NewOpenAIVerifier(apiKey, model string, threshold float64) *OpenAIVerifier {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIVerifier{
		client:    &client,
		model:     model,
		threshold: threshold,
	}
}

func (v *OpenAIVerifier) Name() string {
	return "openai:" + v.model
}

func (v *OpenAIVerifier) Verify(ctx context.Context, candidate, reference []byte) (Match, error) {
	if len(reference) == 0 {
		return Match{}, ErrReferenceUnavailable
	}

	// Downscale both sides, the model does not need full resolution.
	candidateJPEG, err := ResizeImage(candidate, 512)
	if err != nil {
		return Match{}, fmt.Errorf("prepare candidate image: %w", err)
	}
	referenceJPEG, err := ResizeImage(reference, 512)
	if err != nil {
		return Match{}, ErrReferenceUnavailable
	}

	resp, err := v.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: v.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			{
				OfSystem: &openai.ChatCompletionSystemMessageParam{
					Content: openai.ChatCompletionSystemMessageParamContentUnion{
						OfString: openai.String(systemPrompt),
					},
				},
			},
			{
				OfUser: &openai.ChatCompletionUserMessageParam{
					Content: openai.ChatCompletionUserMessageParamContentUnion{
						OfArrayOfContentParts: []openai.ChatCompletionContentPartUnionParam{
							openai.TextContentPart("Verify whether the candidate photo shows the enrolled person."),
							openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
								URL:    dataURL(candidateJPEG),
								Detail: "low",
							}),
							openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
								URL:    dataURL(referenceJPEG),
								Detail: "low",
							}),
						},
					},
				},
			},
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		},
		MaxTokens: openai.Int(200),
	})
	if err != nil {
		return Match{}, fmt.Errorf("face verification request: %w", err)
	}

	if len(resp.Choices) == 0 {
		return Match{}, errors.New("no response from verification model")
	}

	var result verdict
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &result); err != nil {
		return Match{}, fmt.Errorf("parse verification verdict: %w", err)
	}

	return v.interpret(result)
}

func (v *OpenAIVerifier) interpret(result verdict) (Match, error) {
	if !result.ReferenceUsable {
		return Match{}, ErrReferenceUnavailable
	}
	if result.FacesInCandidate == 0 {
		return Match{}, ErrNoFace
	}
	if result.FacesInCandidate > 1 {
		return Match{}, ErrMultipleFaces
	}

	match := Match{
		Confidence: result.Confidence,
	}
	if result.SamePerson && result.Confidence >= v.threshold {
		match.Matched = true
		match.Reason = "match"
	} else {
		match.Reason = fmt.Sprintf("below similarity threshold (confidence %.2f)", result.Confidence)
	}
	return match, nil
}

func dataURL(jpegData []byte) string {
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(jpegData)
}
