package services

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

type ModelInfo struct {
	Model         string `json:"model"`
	Family        string `json:"family"`
	ParameterSize string `json:"parameter_size"`
	Quantization  string `json:"quantization_level"`
}

type ollamaShowResponse struct {
	Details struct {
		Family            string `json:"family"`
		ParameterSize     string `json:"parameter_size"`
		QuantizationLevel string `json:"quantization_level"`
	} `json:"details"`
}

// ModelService はOllamaのネイティブAPI(/api/show)からモデル情報を取得する。
type ModelService struct {
	client  *resty.Client
	baseURL string
	model   string
}

func NewModelService(baseURL string, model string) *ModelService {
	return &ModelService{
		client:  resty.New(),
		baseURL: strings.TrimSuffix(baseURL, "/"),
		model:   model,
	}
}

func (ms *ModelService) GetModelInfo() (ModelInfo, error) {
	requestBody := map[string]interface{}{
		"model": ms.model,
	}

	resp, err := ms.client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(requestBody).
		Post(ms.baseURL + "/api/show")

	if err != nil {
		return ModelInfo{}, err
	}

	if resp.StatusCode() != http.StatusOK {
		return ModelInfo{}, fmt.Errorf("failed to fetch model info, status: %d", resp.StatusCode())
	}

	var result ollamaShowResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return ModelInfo{}, fmt.Errorf("failed to parse response: %v", err)
	}

	return ModelInfo{
		Model:         ms.model,
		Family:        result.Details.Family,
		ParameterSize: result.Details.ParameterSize,
		Quantization:  result.Details.QuantizationLevel,
	}, nil
}
