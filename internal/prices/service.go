package prices

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	coingeckoBase = "https://api.coingecko.com/api/v3"
	mexcBase      = "https://api.mexc.com/api/v3"

	cacheKeyPrefix  = "cryptocal:price:"
	cacheTTL        = 90 * time.Second
	coinsRefreshGap = 12 * time.Hour
)

// Service answers "what is this token worth in USD right now" for the
// calendar UI. It is an explicit object with a lifecycle: Start loads the
// CoinGecko coins list and begins refreshing it, Stop shuts the refresher
// down. Lookup order is Redis cache, MEXC ticker, CoinGecko simple price.
type Service struct {
	httpClient *http.Client
	redis      *redis.Client

	mu      sync.RWMutex
	coinIDs map[string]string // upper ticker -> coingecko id

	stop chan struct{}
	done chan struct{}
}

// New builds the service. rdb may be nil, in which case lookups simply
// skip the cache.
func New(rdb *redis.Client) *Service {
	return &Service{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		redis:      rdb,
		coinIDs:    make(map[string]string),
	}
}

// Start loads the ticker index and launches the background refresher. A
// failed initial load is not fatal: MEXC lookups still work, and the
// refresher retries.
func (s *Service) Start(ctx context.Context) {
	if err := s.refreshCoins(ctx); err != nil {
		slog.Warn("initial coins list load failed", "error", err)
	}
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	go s.refreshLoop()
}

// Stop halts the refresher and waits for it to exit.
func (s *Service) Stop() {
	if s.stop == nil {
		return
	}
	close(s.stop)
	<-s.done
}

func (s *Service) refreshLoop() {
	defer close(s.done)
	ticker := time.NewTicker(coinsRefreshGap)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			if err := s.refreshCoins(ctx); err != nil {
				slog.Warn("coins list refresh failed", "error", err)
			}
			cancel()
		}
	}
}

type cgCoin struct {
	ID     string `json:"id"`
	Symbol string `json:"symbol"`
}

func (s *Service) refreshCoins(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, coingeckoBase+"/coins/list", nil)
	if err != nil {
		return err
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("coingecko coins list: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("coingecko coins list: status %d", resp.StatusCode)
	}

	var coins []cgCoin
	if err := json.NewDecoder(resp.Body).Decode(&coins); err != nil {
		return fmt.Errorf("coingecko coins list decode: %w", err)
	}

	index := make(map[string]string, len(coins))
	for _, c := range coins {
		sym := strings.ToUpper(c.Symbol)
		// First listing wins; later duplicates are usually wrapped clones.
		if _, seen := index[sym]; !seen {
			index[sym] = c.ID
		}
	}

	s.mu.Lock()
	s.coinIDs = index
	s.mu.Unlock()
	return nil
}

// Price returns the USD spot price for a ticker symbol.
func (s *Service) Price(ctx context.Context, symbol string) (float64, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return 0, fmt.Errorf("empty symbol")
	}

	if cached, ok := s.cachedPrice(ctx, symbol); ok {
		return cached, nil
	}

	price, err := s.mexcPrice(ctx, symbol)
	if err != nil {
		price, err = s.coingeckoPrice(ctx, symbol)
	}
	if err != nil {
		return 0, err
	}

	s.cachePrice(ctx, symbol, price)
	return price, nil
}

// Prices resolves a batch of symbols, dropping the ones that fail.
func (s *Service) Prices(ctx context.Context, symbols []string) map[string]float64 {
	out := make(map[string]float64, len(symbols))
	for _, sym := range symbols {
		price, err := s.Price(ctx, sym)
		if err != nil {
			slog.Debug("price lookup failed", "symbol", sym, "error", err)
			continue
		}
		out[strings.ToUpper(strings.TrimSpace(sym))] = price
	}
	return out
}

func (s *Service) cachedPrice(ctx context.Context, symbol string) (float64, bool) {
	if s.redis == nil {
		return 0, false
	}
	raw, err := s.redis.Get(ctx, cacheKeyPrefix+symbol).Result()
	if err != nil {
		return 0, false
	}
	price, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return price, true
}

func (s *Service) cachePrice(ctx context.Context, symbol string, price float64) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Set(ctx, cacheKeyPrefix+symbol, strconv.FormatFloat(price, 'f', -1, 64), cacheTTL).Err(); err != nil {
		slog.Debug("price cache write failed", "symbol", symbol, "error", err)
	}
}

type mexcTicker struct {
	Symbol string `json:"symbol"`
	Price  string `json:"price"`
}

func (s *Service) mexcPrice(ctx context.Context, symbol string) (float64, error) {
	u := fmt.Sprintf("%s/ticker/price?symbol=%sUSDT", mexcBase, url.QueryEscape(symbol))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, err
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("mexc ticker: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("mexc ticker %s: status %d", symbol, resp.StatusCode)
	}

	var ticker mexcTicker
	if err := json.NewDecoder(resp.Body).Decode(&ticker); err != nil {
		return 0, fmt.Errorf("mexc ticker decode: %w", err)
	}
	price, err := strconv.ParseFloat(ticker.Price, 64)
	if err != nil {
		return 0, fmt.Errorf("mexc ticker %s: bad price %q", symbol, ticker.Price)
	}
	return price, nil
}

func (s *Service) coingeckoPrice(ctx context.Context, symbol string) (float64, error) {
	s.mu.RLock()
	id, ok := s.coinIDs[symbol]
	s.mu.RUnlock()
	if !ok {
		return 0, fmt.Errorf("unknown symbol %s", symbol)
	}

	q := url.Values{}
	q.Set("ids", id)
	q.Set("vs_currencies", "usd")
	u := fmt.Sprintf("%s/simple/price?%s", coingeckoBase, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, err
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("coingecko price: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("coingecko price %s: status %d", symbol, resp.StatusCode)
	}

	var data map[string]map[string]float64
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return 0, fmt.Errorf("coingecko price decode: %w", err)
	}
	value, ok := data[id]["usd"]
	if !ok {
		return 0, fmt.Errorf("coingecko price %s: missing usd quote", symbol)
	}
	return value, nil
}
