package availabilityservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/m04kA/SMC-SlotPicker/internal/domain"
)

const maxErrorBodySize = 4096

// Client клиент для сервиса доступности специалистов
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	log        Logger
}

// NewClient создает новый экземпляр клиента сервиса доступности.
// rps <= 0 отключает ограничение частоты исходящих запросов
func NewClient(baseURL string, timeout time.Duration, rps float64, burst int, log Logger) *Client {
	limiter := rate.NewLimiter(rate.Inf, 0)
	if rps > 0 {
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiter: limiter,
		log:     log,
	}
}

// GetAvailableSlots получает доступные слоты специалиста в порядке сервиса
func (c *Client) GetAvailableSlots(ctx context.Context, specialistID int64) ([]domain.AvailabilityRecord, error) {
	url := fmt.Sprintf("%s/specialists/%d/available-slots", c.baseURL, specialistID)

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: rate limiter: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("AvailabilityService: request for specialist=%d failed: %v", specialistID, err)
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		// Продолжаем обработку
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrSpecialistNotFound, errorMessage(resp))
	default:
		return nil, fmt.Errorf("%w: status %d: %s", ErrInvalidResponse, resp.StatusCode, errorMessage(resp))
	}

	var days []DaySlots
	if err := json.NewDecoder(resp.Body).Decode(&days); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	records := make([]domain.AvailabilityRecord, 0, len(days))
	for _, d := range days {
		records = append(records, domain.AvailabilityRecord{Date: d.Date, Slots: d.Slots})
	}

	c.log.Info("AvailabilityService: fetched %d days for specialist=%d", len(records), specialistID)
	return records, nil
}

// errorMessage достает message из тела ошибки, иначе возвращает общий текст статуса
func errorMessage(resp *http.Response) string {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Message != "" {
		return errResp.Message
	}
	return http.StatusText(resp.StatusCode)
}
