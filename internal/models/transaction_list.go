package models

// AllRecords como tamaño de página devuelve todas las transacciones
const AllRecords = -1

// ListQuery son los parámetros de búsqueda, orden y paginación del listado
type ListQuery struct {
	Page      int
	PerPage   int
	Search    string
	SortBy    string
	SortOrder string
}

// Descending indica si el orden solicitado es descendente
func (q ListQuery) Descending() bool {
	return q.SortOrder == "desc"
}

// TransactionPage es una página del listado
type TransactionPage struct {
	Transactions []StockTransaction
	Total        int64
	Pages        int
	CurrentPage  int
}

// TransactionPageResponse es la forma JSON de TransactionPage
type TransactionPageResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Total        int64                 `json:"total"`
	Pages        int                   `json:"pages"`
	CurrentPage  int                   `json:"current_page"`
}

func (p TransactionPage) ToResponse() TransactionPageResponse {
	return TransactionPageResponse{
		Transactions: ToResponses(p.Transactions),
		Total:        p.Total,
		Pages:        p.Pages,
		CurrentPage:  p.CurrentPage,
	}
}

// ImportResult resume una importación masiva desde CSV
type ImportResult struct {
	Message           string   `json:"message"`
	SuccessfulImports int      `json:"successful_imports"`
	TotalRows         int      `json:"total_rows"`
	Errors            []string `json:"errors"`
	Warning           string   `json:"warning,omitempty"`
}
