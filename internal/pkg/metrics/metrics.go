package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics agrupa os coletores HTTP e de negócio num registry próprio,
// de modo que cada instância (inclusive em testes) registre sem colisão.
type Metrics struct {
	ServiceName string
	registry    *prometheus.Registry

	RequestCounter           *prometheus.CounterVec
	RequestDurationHistogram *prometheus.HistogramVec
	StatusCodeCategory       *prometheus.CounterVec

	BaixasRegistradas prometheus.Counter
	ParesVendidos     prometheus.Counter
	ValorVendido      prometheus.Counter
	BaixasRecusadas   *prometheus.CounterVec
	LotesCriados      prometheus.Counter
	ParesRecebidos    prometheus.Counter
	VitrineCache      *prometheus.CounterVec
}

// New cria e registra os coletores.
func New(serviceName string) *Metrics {
	m := &Metrics{
		ServiceName: serviceName,
		registry:    prometheus.NewRegistry(),

		RequestCounter: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total de requisições HTTP",
		}, []string{"service", "method", "path", "status"}),
		RequestDurationHistogram: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duração das requisições HTTP em segundos",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "path", "status"}),
		StatusCodeCategory: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_status_category_total",
			Help: "Respostas por categoria de status (2xx, 4xx, 5xx)",
		}, []string{"service", "category", "method", "path"}),

		BaixasRegistradas: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "loja_baixas_registradas_total",
			Help: "Vendas registradas com sucesso",
		}),
		ParesVendidos: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "loja_pares_vendidos_total",
			Help: "Pares baixados do estoque por vendas",
		}),
		ValorVendido: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "loja_valor_vendido_reais_total",
			Help: "Valor total cobrado nas vendas, em reais",
		}),
		BaixasRecusadas: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "loja_baixas_recusadas_total",
			Help: "Vendas recusadas por motivo",
		}, []string{"motivo"}),
		LotesCriados: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "loja_lotes_criados_total",
			Help: "Lotes recebidos",
		}),
		ParesRecebidos: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "loja_pares_recebidos_total",
			Help: "Pares que entraram no estoque via lote",
		}),
		VitrineCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "loja_vitrine_cache_total",
			Help: "Consultas da vitrine por resultado do cache (hit, miss)",
		}, []string{"resultado"}),
	}

	m.registry.MustRegister(
		m.RequestCounter,
		m.RequestDurationHistogram,
		m.StatusCodeCategory,
		m.BaixasRegistradas,
		m.ParesVendidos,
		m.ValorVendido,
		m.BaixasRecusadas,
		m.LotesCriados,
		m.ParesRecebidos,
		m.VitrineCache,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveRequest registra uma requisição concluída.
func (m *Metrics) ObserveRequest(method, path string, status int, seconds float64) {
	statusStr := statusLabel(status)
	m.RequestCounter.WithLabelValues(m.ServiceName, method, path, statusStr).Inc()
	m.RequestDurationHistogram.WithLabelValues(m.ServiceName, method, path, statusStr).Observe(seconds)

	if category := statusCategory(status); category != "" {
		m.StatusCodeCategory.WithLabelValues(m.ServiceName, category, method, path).Inc()
	}
}

// BaixaRegistrada contabiliza uma venda.
func (m *Metrics) BaixaRegistrada(pares int, valor float64) {
	m.BaixasRegistradas.Inc()
	m.ParesVendidos.Add(float64(pares))
	m.ValorVendido.Add(valor)
}

// BaixaRecusada contabiliza uma venda rejeitada ("estoque_insuficiente", "validacao").
func (m *Metrics) BaixaRecusada(motivo string) {
	m.BaixasRecusadas.WithLabelValues(motivo).Inc()
}

// LoteCriado contabiliza a entrada de um lote.
func (m *Metrics) LoteCriado(pares int) {
	m.LotesCriados.Inc()
	m.ParesRecebidos.Add(float64(pares))
}

// VitrineCacheResult contabiliza hit/miss do cache da vitrine.
func (m *Metrics) VitrineCacheResult(hit bool) {
	if hit {
		m.VitrineCache.WithLabelValues("hit").Inc()
		return
	}
	m.VitrineCache.WithLabelValues("miss").Inc()
}

// Handler expõe o registry no formato Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry permite inspecionar os coletores (usado nos testes).
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func statusCategory(status int) string {
	switch {
	case status >= 200 && status < 300:
		return "2xx"
	case status >= 400 && status < 500:
		return "4xx"
	case status >= 500 && status < 600:
		return "5xx"
	}
	return ""
}

func statusLabel(status int) string {
	if status == 0 {
		status = http.StatusOK
	}
	return strconv.Itoa(status)
}
