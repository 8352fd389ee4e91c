package productrepo

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/QaMarcosEd/calcadosAraujo/internal/domain"
	"github.com/QaMarcosEd/calcadosAraujo/internal/errors"
	"github.com/QaMarcosEd/calcadosAraujo/internal/pkg/database"
	"github.com/QaMarcosEd/calcadosAraujo/internal/pkg/logger"
)

// ProductRepository acessa a tabela produtos. Lotes são agrupamentos por coluna, não uma tabela.
type ProductRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewProductRepository cria o repositório injetando o pool e o timeout por consulta.
func NewProductRepository(db *sql.DB, dbTimeout time.Duration, log logger.Logger) *ProductRepository {
	return &ProductRepository{
		DB:        db,
		DBTimeout: dbTimeout,
		logger:    log,
	}
}

const produtoColumns = `id, nome, marca, modelo, cor, genero, referencia, imagem, tamanho, quantidade,
	lote, data_recebimento, preco_venda, preco_custo, em_promocao, preco_promocao, disponivel,
	created_at, updated_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduto(s rowScanner) (domain.Produto, error) {
	var p domain.Produto
	err := s.Scan(
		&p.ID, &p.Nome, &p.Marca, &p.Modelo, &p.Cor, &p.Genero, &p.Referencia, &p.Imagem,
		&p.Tamanho, &p.Quantidade, &p.Lote, &p.DataRecebimento, &p.PrecoVenda, &p.PrecoCusto,
		&p.EmPromocao, &p.PrecoPromocao, &p.Disponivel, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

func (r *ProductRepository) queryProdutos(ctx context.Context, query string, args ...interface{}) ([]domain.Produto, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	produtos := make([]domain.Produto, 0)
	for rows.Next() {
		p, err := scanProduto(rows)
		if err != nil {
			return nil, err
		}
		produtos = append(produtos, p)
	}
	return produtos, rows.Err()
}

// whereBuilder acumula condições com placeholders posicionais ($1, $2...).
type whereBuilder struct {
	conds []string
	args  []interface{}
}

func (w *whereBuilder) add(cond string, arg interface{}) {
	w.args = append(w.args, arg)
	w.conds = append(w.conds, fmt.Sprintf(cond, len(w.args)))
}

func (w *whereBuilder) addRaw(cond string) {
	w.conds = append(w.conds, cond)
}

func (w *whereBuilder) sql() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// buildFilterWhere traduz os filtros da listagem. Textos são busca parcial sem caixa; tamanho e gênero são exatos.
func buildFilterWhere(f domain.ProdutoFiltro) *whereBuilder {
	w := &whereBuilder{}
	if f.Marca != "" {
		w.add(`marca ILIKE $%d ESCAPE '\'`, database.Contains(f.Marca))
	}
	if f.Tamanho != nil {
		w.add("tamanho = $%d", *f.Tamanho)
	}
	if f.Referencia != "" {
		w.add(`referencia ILIKE $%d ESCAPE '\'`, database.Contains(f.Referencia))
	}
	if f.Genero != "" {
		w.add("genero = $%d", f.Genero)
	}
	if f.Modelo != "" {
		w.add(`modelo ILIKE $%d ESCAPE '\'`, database.Contains(f.Modelo))
	}
	return w
}

// FindByID busca um produto pelo id.
func (r *ProductRepository) FindByID(ctx context.Context, id int64) (domain.Produto, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT ` + produtoColumns + ` FROM produtos WHERE id = $1`
	p, err := scanProduto(r.DB.QueryRowContext(ctxTimeout, query, id))
	if err == sql.ErrNoRows {
		return domain.Produto{}, errors.NewNotFoundError(fmt.Sprintf("Produto %d não encontrado.", id))
	}
	if err != nil {
		r.logger.Error("Falha ao buscar produto no DB.", err)
		return domain.Produto{}, errors.NewDBError("Falha ao buscar produto", err)
	}
	return p, nil
}

// List devolve a página de produtos filtrados, do mais recente para o mais antigo.
func (r *ProductRepository) List(ctx context.Context, f domain.ProdutoFiltro) ([]domain.Produto, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	w := buildFilterWhere(f)
	query := `SELECT ` + produtoColumns + ` FROM produtos` + w.sql() +
		fmt.Sprintf(" ORDER BY id DESC LIMIT $%d OFFSET $%d", len(w.args)+1, len(w.args)+2)
	args := append(w.args, f.Limit, f.Offset())

	produtos, err := r.queryProdutos(ctxTimeout, query, args...)
	if err != nil {
		r.logger.Error("Falha ao listar produtos no DB.", err)
		return nil, errors.NewDBError("Falha ao listar produtos", err)
	}
	return produtos, nil
}

// Resumo soma quantidade, valor e custo sobre todo o conjunto filtrado (sem paginação).
func (r *ProductRepository) Resumo(ctx context.Context, f domain.ProdutoFiltro) (domain.EstoqueResumo, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	w := buildFilterWhere(f)
	query := `
		SELECT COUNT(*),
		       COALESCE(SUM(quantidade), 0),
		       COALESCE(SUM(preco_venda * quantidade), 0),
		       COALESCE(SUM(COALESCE(preco_custo, 0) * quantidade), 0),
		       COUNT(*) FILTER (WHERE quantidade = 0)
		FROM produtos` + w.sql()

	var res domain.EstoqueResumo
	err := r.DB.QueryRowContext(ctxTimeout, query, w.args...).Scan(
		&res.TotalCount, &res.TotalPares, &res.ValorEstoque, &res.CustoEstoque, &res.Esgotados,
	)
	if err != nil {
		r.logger.Error("Falha ao calcular resumo do estoque.", err)
		return domain.EstoqueResumo{}, errors.NewDBError("Falha ao calcular resumo do estoque", err)
	}
	return res, nil
}

var dimensaoColumn = map[domain.Dimensao]string{
	domain.DimensaoGenero: "genero",
	domain.DimensaoModelo: "modelo",
	domain.DimensaoMarca:  "marca",
}

// AgregarPor soma as quantidades por valor distinto da dimensão.
func (r *ProductRepository) AgregarPor(ctx context.Context, dim domain.Dimensao, f domain.ProdutoFiltro) ([]domain.Agregado, error) {
	column, ok := dimensaoColumn[dim]
	if !ok {
		return nil, errors.NewValidationError(fmt.Sprintf("Dimensão de agregação inválida: %s.", dim))
	}

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	w := buildFilterWhere(f)
	query := fmt.Sprintf(`SELECT COALESCE(NULLIF(%s, ''), 'Desconhecido'), COALESCE(SUM(quantidade), 0)
		FROM produtos%s GROUP BY 1 ORDER BY 2 DESC, 1`, column, w.sql())

	rows, err := r.DB.QueryContext(ctxTimeout, query, w.args...)
	if err != nil {
		r.logger.Error("Falha ao agregar produtos.", err)
		return nil, errors.NewDBError("Falha ao agregar produtos", err)
	}
	defer rows.Close()

	out := make([]domain.Agregado, 0)
	for rows.Next() {
		var a domain.Agregado
		if err := rows.Scan(&a.Name, &a.Value); err != nil {
			return nil, errors.NewDBError("Falha ao ler agregação", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewDBError("Falha ao ler agregação", err)
	}
	return out, nil
}

// ExistsSKU verifica se já há produto com a mesma referência, cor e tamanho.
func (r *ProductRepository) ExistsSKU(ctx context.Context, referencia, cor string, tamanho int) (bool, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var exists bool
	err := r.DB.QueryRowContext(ctxTimeout,
		`SELECT EXISTS (SELECT 1 FROM produtos WHERE referencia = $1 AND cor = $2 AND tamanho = $3)`,
		referencia, cor, tamanho,
	).Scan(&exists)
	if err != nil {
		return false, errors.NewDBError("Falha ao verificar duplicidade", err)
	}
	return exists, nil
}

// CreateBatch insere todas as variações do lote numa única transação.
// A constraint UNIQUE (referencia, cor, tamanho) é a palavra final sobre duplicidade.
func (r *ProductRepository) CreateBatch(ctx context.Context, produtos []domain.Produto) ([]domain.Produto, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	tx, err := r.DB.BeginTx(ctxTimeout, nil)
	if err != nil {
		return nil, errors.NewDBError("Falha ao iniciar transação do lote", err)
	}
	defer tx.Rollback() // sem efeito após o Commit

	const insertSQL = `
		INSERT INTO produtos (nome, marca, modelo, cor, genero, referencia, imagem, tamanho, quantidade,
			lote, data_recebimento, preco_venda, preco_custo, em_promocao, preco_promocao)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, FALSE, NULL)
		RETURNING id, disponivel, created_at, updated_at`

	criados := make([]domain.Produto, 0, len(produtos))
	for _, p := range produtos {
		err = tx.QueryRowContext(ctxTimeout, insertSQL,
			p.Nome, p.Marca, p.Modelo, p.Cor, p.Genero, p.Referencia, p.Imagem, p.Tamanho, p.Quantidade,
			p.Lote, p.DataRecebimento, p.PrecoVenda, p.PrecoCusto,
		).Scan(&p.ID, &p.Disponivel, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			if database.IsUniqueViolation(err) {
				r.logger.Warn("Lote rejeitado por SKU duplicado.", map[string]interface{}{
					"referencia": p.Referencia, "cor": p.Cor, "tamanho": p.Tamanho,
				})
				return nil, errors.NewValidationError(duplicadoMsg(p.Referencia, p.Cor, p.Tamanho))
			}
			r.logger.Error("Falha ao inserir produto do lote.", err)
			return nil, errors.NewDBError("Falha ao inserir produto do lote", err)
		}
		criados = append(criados, p)
	}

	if err = tx.Commit(); err != nil {
		return nil, errors.NewDBError("Falha ao commitar lote", err)
	}
	return criados, nil
}

func duplicadoMsg(referencia, cor string, tamanho int) string {
	return fmt.Sprintf("Já existe produto com referência %s, cor %s e tamanho %d.", referencia, cor, tamanho)
}

// FindByLote devolve os produtos do lote ordenados por tamanho.
func (r *ProductRepository) FindByLote(ctx context.Context, lote string) ([]domain.Produto, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	produtos, err := r.queryProdutos(ctxTimeout,
		`SELECT `+produtoColumns+` FROM produtos WHERE lote = $1 ORDER BY tamanho ASC`, lote)
	if err != nil {
		r.logger.Error("Falha ao buscar lote.", err)
		return nil, errors.NewDBError("Falha ao buscar lote", err)
	}
	return produtos, nil
}

// UpdateLote aplica preço e promoção a todos os produtos do lote num único UPDATE.
// Devolve quantas linhas foram alteradas.
func (r *ProductRepository) UpdateLote(ctx context.Context, e domain.LoteEdicao) (int64, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var sets []string
	var args []interface{}
	set := func(column string, v interface{}) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if e.PrecoVenda.Valid {
		set("preco_venda", e.PrecoVenda.Decimal)
	}
	if e.PrecoCusto.Valid {
		set("preco_custo", e.PrecoCusto.Decimal)
	}
	if e.EmPromocao != nil {
		set("em_promocao", *e.EmPromocao)
		if *e.EmPromocao {
			set("preco_promocao", e.PrecoPromocao.Decimal)
		} else {
			sets = append(sets, "preco_promocao = NULL")
		}
	} else if e.PrecoPromocao.Valid {
		set("preco_promocao", e.PrecoPromocao.Decimal)
	}
	sets = append(sets, "updated_at = NOW()")
	args = append(args, e.Lote)

	query := fmt.Sprintf("UPDATE produtos SET %s WHERE lote = $%d", strings.Join(sets, ", "), len(args))
	result, err := r.DB.ExecContext(ctxTimeout, query, args...)
	if err != nil {
		if database.IsCheckViolation(err) {
			return 0, errors.NewValidationError("O preço promocional deve ser menor que o preço de venda de todos os produtos do lote.")
		}
		r.logger.Error("Falha ao atualizar lote.", err)
		return 0, errors.NewDBError("Falha ao atualizar lote", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, errors.NewDBError("Falha ao verificar linhas afetadas", err)
	}
	return affected, nil
}

// Update sobrescreve o produto. disponivel é recalculado pelo banco.
func (r *ProductRepository) Update(ctx context.Context, p domain.Produto) (domain.Produto, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
		UPDATE produtos SET nome = $1, marca = $2, modelo = $3, cor = $4, genero = $5, referencia = $6,
			imagem = $7, tamanho = $8, quantidade = $9, lote = $10, data_recebimento = $11,
			preco_venda = $12, preco_custo = $13, em_promocao = $14, preco_promocao = $15, updated_at = NOW()
		WHERE id = $16
		RETURNING ` + produtoColumns

	updated, err := scanProduto(r.DB.QueryRowContext(ctxTimeout, query,
		p.Nome, p.Marca, p.Modelo, p.Cor, p.Genero, p.Referencia, p.Imagem, p.Tamanho, p.Quantidade,
		p.Lote, p.DataRecebimento, p.PrecoVenda, p.PrecoCusto, p.EmPromocao, p.PrecoPromocao, p.ID,
	))
	switch {
	case err == sql.ErrNoRows:
		return domain.Produto{}, errors.NewNotFoundError(fmt.Sprintf("Produto %d não encontrado.", p.ID))
	case database.IsUniqueViolation(err):
		return domain.Produto{}, errors.NewConflictError(duplicadoMsg(p.Referencia, p.Cor, p.Tamanho))
	case database.IsCheckViolation(err):
		return domain.Produto{}, errors.NewValidationError("Dados do produto violam as regras de estoque ou promoção.")
	case err != nil:
		r.logger.Error("Falha ao atualizar produto.", err)
		return domain.Produto{}, errors.NewDBError("Falha ao atualizar produto", err)
	}
	return updated, nil
}

// Delete remove o produto. Produtos com baixas são protegidos pela FK (ON DELETE RESTRICT).
func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	result, err := r.DB.ExecContext(ctxTimeout, `DELETE FROM produtos WHERE id = $1`, id)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return errors.NewConflictError("Não é possível excluir: o produto possui baixas registradas.")
		}
		r.logger.Error("Falha ao excluir produto.", err)
		return errors.NewDBError("Falha ao excluir produto", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return errors.NewDBError("Falha ao verificar linhas afetadas", err)
	}
	if affected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("Produto %d não encontrado.", id))
	}
	return nil
}

// ListDisponiveis devolve os SKUs com estoque para a vitrine.
func (r *ProductRepository) ListDisponiveis(ctx context.Context, f domain.VitrineFiltro) ([]domain.Produto, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	w := &whereBuilder{}
	w.addRaw("quantidade > 0")
	if f.Genero != "" {
		w.add("genero = $%d", f.Genero)
	}
	if f.MinPreco.Valid {
		w.add("preco_venda >= $%d", f.MinPreco.Decimal)
	}
	if f.MaxPreco.Valid {
		w.add("preco_venda <= $%d", f.MaxPreco.Decimal)
	}

	query := `SELECT ` + produtoColumns + ` FROM produtos` + w.sql() + ` ORDER BY nome, referencia, cor, tamanho`
	produtos, err := r.queryProdutos(ctxTimeout, query, w.args...)
	if err != nil {
		r.logger.Error("Falha ao listar vitrine.", err)
		return nil, errors.NewDBError("Falha ao listar vitrine", err)
	}
	return produtos, nil
}

// ListAll faz a varredura completa usada pelos relatórios e pela exportação.
func (r *ProductRepository) ListAll(ctx context.Context) ([]domain.Produto, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	produtos, err := r.queryProdutos(ctxTimeout, `SELECT `+produtoColumns+` FROM produtos ORDER BY modelo, referencia, cor, tamanho`)
	if err != nil {
		r.logger.Error("Falha ao ler estoque completo.", err)
		return nil, errors.NewDBError("Falha ao ler estoque", err)
	}
	return produtos, nil
}

// CountLotesDesde conta lotes distintos criados a partir do instante informado.
func (r *ProductRepository) CountLotesDesde(ctx context.Context, since time.Time) (int, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var n int
	err := r.DB.QueryRowContext(ctxTimeout,
		`SELECT COUNT(DISTINCT lote) FROM produtos WHERE lote IS NOT NULL AND created_at >= $1`, since,
	).Scan(&n)
	if err != nil {
		return 0, errors.NewDBError("Falha ao contar lotes do dia", err)
	}
	return n, nil
}
