package baixarepo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/QaMarcosEd/calcadosAraujo/internal/domain"
	"github.com/QaMarcosEd/calcadosAraujo/internal/errors"
	"github.com/QaMarcosEd/calcadosAraujo/internal/pkg/database"
	"github.com/QaMarcosEd/calcadosAraujo/internal/pkg/logger"
)

// BaixaRepository grava vendas e decrementa o estoque na mesma transação.
type BaixaRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewBaixaRepository cria o repositório de baixas.
func NewBaixaRepository(db *sql.DB, dbTimeout time.Duration, log logger.Logger) *BaixaRepository {
	return &BaixaRepository{
		DB:        db,
		DBTimeout: dbTimeout,
		logger:    log,
	}
}

// Registrar decrementa o estoque e grava a baixa de forma atômica.
// O UPDATE condicional impede que duas vendas simultâneas deixem a quantidade negativa.
// Devolve a baixa criada e o estoque restante.
func (r *BaixaRepository) Registrar(ctx context.Context, produtoID int64, quantidade int, valorTotal decimal.Decimal) (domain.Baixa, int, error) {
	r.logger.Debug("Registrando baixa.", map[string]interface{}{"produto_id": produtoID, "quantidade": quantidade})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	tx, err := r.DB.BeginTx(ctxTimeout, nil)
	if err != nil {
		r.logger.Error("Falha ao iniciar transação da baixa.", err)
		return domain.Baixa{}, 0, errors.NewDBError("Falha ao iniciar transação", err)
	}
	defer tx.Rollback()

	var restante int
	var custo decimal.NullDecimal
	err = tx.QueryRowContext(ctxTimeout, `
		UPDATE produtos
		SET quantidade = quantidade - $1, updated_at = NOW()
		WHERE id = $2 AND quantidade >= $1
		RETURNING quantidade, preco_custo`,
		quantidade, produtoID,
	).Scan(&restante, &custo)

	if err == sql.ErrNoRows {
		// Ou o produto não existe ou o estoque não cobre a venda.
		var existe bool
		if err := tx.QueryRowContext(ctxTimeout, `SELECT EXISTS (SELECT 1 FROM produtos WHERE id = $1)`, produtoID).Scan(&existe); err != nil {
			return domain.Baixa{}, 0, errors.NewDBError("Falha ao verificar produto", err)
		}
		if !existe {
			return domain.Baixa{}, 0, errors.NewNotFoundError(fmt.Sprintf("Produto %d não encontrado.", produtoID))
		}
		r.logger.Warn("Baixa recusada por estoque insuficiente.", map[string]interface{}{"produto_id": produtoID, "quantidade": quantidade})
		return domain.Baixa{}, 0, errors.NewValidationError("Estoque insuficiente")
	}
	if err != nil {
		r.logger.Error("Falha ao decrementar estoque.", err)
		return domain.Baixa{}, 0, errors.NewDBError("Falha ao decrementar estoque", err)
	}

	b := domain.Baixa{
		ProdutoID:     produtoID,
		Quantidade:    quantidade,
		ValorTotal:    valorTotal,
		CustoUnitario: custo,
	}
	err = tx.QueryRowContext(ctxTimeout, `
		INSERT INTO baixas (produto_id, quantidade, valor_total, custo_unitario)
		VALUES ($1, $2, $3, $4)
		RETURNING id, data_baixa`,
		produtoID, quantidade, valorTotal, custo,
	).Scan(&b.ID, &b.DataBaixa)
	if err != nil {
		r.logger.Error("Falha ao inserir baixa.", err)
		return domain.Baixa{}, 0, errors.NewDBError("Falha ao inserir baixa", err)
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("Falha ao commitar baixa.", err)
		return domain.Baixa{}, 0, errors.NewDBError("Falha ao commitar transação", err)
	}

	r.logger.Info("Baixa registrada.", map[string]interface{}{"baixa_id": b.ID, "produto_id": produtoID, "estoque_restante": restante})
	return b, restante, nil
}

func buildHistoricoWhere(f domain.BaixaFiltro) (string, []interface{}) {
	where := " WHERE 1 = 1"
	var args []interface{}
	add := func(cond string, v interface{}) {
		args = append(args, v)
		where += fmt.Sprintf(" AND "+cond, len(args))
	}

	if f.Marca != "" {
		add(`p.marca ILIKE $%d ESCAPE '\'`, database.Contains(f.Marca))
	}
	if f.Referencia != "" {
		add(`p.referencia ILIKE $%d ESCAPE '\'`, database.Contains(f.Referencia))
	}
	if f.Tamanho != nil {
		add("p.tamanho = $%d", *f.Tamanho)
	}
	if f.DataInicio != nil {
		add("b.data_baixa >= $%d", *f.DataInicio)
	}
	if f.DataFim != nil {
		// Data final inclusiva: até o fim do dia.
		add("b.data_baixa < $%d", f.DataFim.AddDate(0, 0, 1))
	}
	return where, args
}

// Historico devolve a página de vendas filtradas e os totais do conjunto inteiro.
func (r *BaixaRepository) Historico(ctx context.Context, f domain.BaixaFiltro) ([]domain.BaixaDetalhe, domain.BaixaTotais, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	where, args := buildHistoricoWhere(f)
	from := ` FROM baixas b JOIN produtos p ON p.id = b.produto_id` + where

	var totais domain.BaixaTotais
	err := r.DB.QueryRowContext(ctxTimeout,
		`SELECT COUNT(*), COALESCE(SUM(b.valor_total), 0), COALESCE(SUM(b.quantidade), 0)`+from, args...,
	).Scan(&totais.TotalCount, &totais.TotalVendido, &totais.TotalPares)
	if err != nil {
		r.logger.Error("Falha ao totalizar histórico de baixas.", err)
		return nil, domain.BaixaTotais{}, errors.NewDBError("Falha ao totalizar baixas", err)
	}

	query := `SELECT b.id, b.produto_id, b.quantidade, b.valor_total, b.custo_unitario, b.data_baixa,
			p.nome, p.marca, p.modelo, p.cor, p.referencia, p.tamanho` + from +
		fmt.Sprintf(" ORDER BY b.data_baixa DESC, b.id DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	offset := f.Offset()

	rows, err := r.DB.QueryContext(ctxTimeout, query, append(args, f.Limit, offset)...)
	if err != nil {
		r.logger.Error("Falha ao listar baixas.", err)
		return nil, domain.BaixaTotais{}, errors.NewDBError("Falha ao listar baixas", err)
	}
	defer rows.Close()

	out := make([]domain.BaixaDetalhe, 0)
	for rows.Next() {
		var d domain.BaixaDetalhe
		if err := rows.Scan(
			&d.ID, &d.ProdutoID, &d.Quantidade, &d.ValorTotal, &d.CustoUnitario, &d.DataBaixa,
			&d.Produto.Nome, &d.Produto.Marca, &d.Produto.Modelo, &d.Produto.Cor, &d.Produto.Referencia, &d.Produto.Tamanho,
		); err != nil {
			return nil, domain.BaixaTotais{}, errors.NewDBError("Falha ao ler baixa", err)
		}
		d.CustoTotal = d.Baixa.CustoTotal()
		d.Lucro = d.Baixa.Lucro()
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.BaixaTotais{}, errors.NewDBError("Falha ao ler baixas", err)
	}
	return out, totais, nil
}
