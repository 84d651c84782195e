package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/routegate/routegate/internal/generate"
	"github.com/routegate/routegate/internal/logging"
	"github.com/routegate/routegate/internal/routing"
	"github.com/routegate/routegate/internal/upload"
	"go.uber.org/zap"
)

// maxUploadBytes caps the whole multipart body, uploads included.
const maxUploadBytes = 16 << 20 // 16 MiB

type chatResponse struct {
	Provider    string              `json:"provider"`
	Model       string              `json:"model"`
	Response    string              `json:"response"`
	FileInfo    *upload.FileInfo    `json:"file_info,omitempty"`
	RoutingInfo *routingInfoPayload `json:"routing_info,omitempty"`
}

type routingInfoPayload struct {
	OriginalProvider string `json:"original_provider"`
	OriginalModel    string `json:"original_model"`
	RedirectedTo     string `json:"redirected_to"`
	Reason           string `json:"reason"`
}

// ChatCompletionsHandler orchestrates a chat request: validation, optional
// file processing, rule evaluation (file rules before text rules), provider
// resolution and response assembly.
// POST /v1/chat/completions (multipart form)
func ChatCompletionsHandler(engine *routing.Engine, registry *generate.Registry, uploads *upload.Processor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestID := logging.GetRequestID(r.Context())
		if requestID == "" {
			requestID = logging.RequestIDFromHeader(r)
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			http.Error(w, `{"error": "Invalid or oversized form data"}`, http.StatusBadRequest)
			return
		}

		provider := r.FormValue("provider")
		model := r.FormValue("model")
		prompt := r.FormValue("prompt")

		if provider == "" || model == "" {
			http.Error(w, `{"error": "Missing required fields (provider or model)"}`, http.StatusBadRequest)
			return
		}

		originalProvider := provider
		originalModel := model

		var fileInfo *upload.FileInfo
		var routingReason string

		if file, header, err := r.FormFile("file"); err == nil && header.Filename != "" {
			file.Close()

			if !upload.Allowed(header.Filename) {
				msg := fmt.Sprintf(`{"error": "Invalid file type. Allowed types are: %s"}`,
					strings.Join(upload.AllowedExtensions, ", "))
				http.Error(w, msg, http.StatusBadRequest)
				return
			}

			fileInfo, err = uploads.Save(header)
			if err != nil {
				logging.L.Error("failed to store upload",
					zap.String("request_id", requestID), zap.Error(err))
				http.Error(w, `{"error": "Failed to store uploaded file"}`, http.StatusInternalServerError)
				return
			}

			// File rules take precedence; a hit here skips text routing.
			decision, err := engine.RouteByFile(fileInfo.Type)
			if err != nil {
				http.Error(w, `{"error": "Failed to evaluate routing rules"}`, http.StatusInternalServerError)
				return
			}
			if decision != nil {
				provider, model = decision.Provider, decision.Model
				routingReason = decision.Reason
				logging.L.Info("routing file upload",
					zap.String("request_id", requestID),
					zap.String("file_type", fileInfo.Type),
					zap.String("target", provider+"/"+model),
				)
			}
		}

		if prompt == "" && fileInfo == nil {
			http.Error(w, `{"error": "Either prompt or file is required"}`, http.StatusBadRequest)
			return
		}

		if prompt != "" && routingReason == "" {
			decision, err := engine.RouteByText(provider, model, prompt)
			if err != nil {
				http.Error(w, `{"error": "Failed to evaluate routing rules"}`, http.StatusInternalServerError)
				return
			}
			if decision != nil {
				provider, model = decision.Provider, decision.Model
				routingReason = decision.Reason
				logging.L.Info("redirecting request",
					zap.String("request_id", requestID),
					zap.String("from", originalProvider+"/"+originalModel),
					zap.String("to", provider+"/"+model),
				)
			}
		}

		generator := registry.Resolve(provider)

		finalPrompt := prompt
		if fileInfo != nil {
			finalPrompt = fmt.Sprintf("Process uploaded %s: %s", fileInfo.Type, fileInfo.OriginalName)
			if prompt != "" {
				finalPrompt += "\nUser instructions: " + prompt
			}
		}

		result := generator.Generate(model, finalPrompt)

		payload := chatResponse{
			Provider: result.Provider,
			Model:    result.Model,
			Response: result.Text,
			FileInfo: fileInfo,
		}

		// Compare against the values as received: a rule redirecting to the
		// same pair is not a redirect.
		if originalProvider != provider || originalModel != model {
			payload.RoutingInfo = &routingInfoPayload{
				OriginalProvider: originalProvider,
				OriginalModel:    originalModel,
				RedirectedTo:     provider + "/" + model,
				Reason:           routingReason,
			}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(payload)
	}
}
