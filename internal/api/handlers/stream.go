package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/quantlab/riskd/internal/marketdata"
	"github.com/quantlab/riskd/pkg/logger"
)

// 스트림 기본 설정
const (
	defaultStreamInterval = 15 * time.Second
	streamWriteWait       = 10 * time.Second
	maxStreamSymbols      = 20
)

// StreamHandler streams current quotes over websocket
// ⭐ SSOT: 실시간 시세 스트림은 이 핸들러에서만
type StreamHandler struct {
	market   *marketdata.Service
	upgrader websocket.Upgrader
	interval time.Duration
	logger   *logger.Logger
}

// NewStreamHandler creates a new quote stream handler
func NewStreamHandler(market *marketdata.Service, log *logger.Logger) *StreamHandler {
	return &StreamHandler{
		market: market,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// 대시보드 로컬 개발용: 오리진 검사는 프록시 계층 몫
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		interval: defaultStreamInterval,
		logger:   log.WithField("module", "stream"),
	}
}

// QuoteMessage 스트림 메시지
type QuoteMessage struct {
	Type   string            `json:"type"` // "quote" | "error"
	Quote  *marketdata.Quote `json:"quote,omitempty"`
	Symbol string            `json:"symbol,omitempty"`
	Error  string            `json:"error,omitempty"`
}

// Quotes upgrades the connection and pushes quotes periodically
// GET /api/stream/quotes?symbols=AAPL,TSLA
func (h *StreamHandler) Quotes(w http.ResponseWriter, r *http.Request) {
	symbols := parseSymbolList(r.URL.Query().Get("symbols"))
	if len(symbols) == 0 {
		respondError(w, http.StatusBadRequest, "symbols query parameter is required")
		return
	}
	if len(symbols) > maxStreamSymbols {
		respondError(w, http.StatusBadRequest, "too many symbols")
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WithError(err).Warn("Websocket upgrade failed")
		return
	}
	defer conn.Close()

	h.logger.WithField("symbols", symbols).Debug("Quote stream opened")

	// 클라이언트 종료 감지: 읽기 루프가 끝나면 done
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	// 연결 직후 1회 즉시 푸시, 이후 주기 푸시
	for {
		if err := h.pushQuotes(r, conn, symbols); err != nil {
			h.logger.WithError(err).Debug("Quote stream closed")
			return
		}

		select {
		case <-done:
			return
		case <-r.Context().Done():
			return
		case <-ticker.C:
		}
	}
}

// pushQuotes 심볼별 현재가를 전송 (개별 심볼 실패는 오류 메시지로 전달)
func (h *StreamHandler) pushQuotes(r *http.Request, conn *websocket.Conn, symbols []string) error {
	for _, symbol := range symbols {
		var msg QuoteMessage

		quote, err := h.market.CurrentPrice(r.Context(), symbol)
		if err != nil {
			msg = QuoteMessage{Type: "error", Symbol: symbol, Error: err.Error()}
		} else {
			msg = QuoteMessage{Type: "quote", Quote: quote}
		}

		conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
		if err := conn.WriteJSON(msg); err != nil {
			return err
		}
	}
	return nil
}

func parseSymbolList(raw string) []string {
	var symbols []string
	for _, s := range strings.Split(raw, ",") {
		s = strings.TrimSpace(s)
		if s != "" {
			symbols = append(symbols, strings.ToUpper(s))
		}
	}
	return symbols
}
