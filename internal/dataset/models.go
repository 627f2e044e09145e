package dataset

// Column names used by the Câmara dos Deputados open-data exports. The raw
// files carry more columns than these; everything beyond the mandatory set is
// passed through opaquely by the filter pipeline.
const (
	ColBillID = "id"

	ColEventID          = "idVotacao"
	ColEventBillID      = "proposicao_id"
	ColEventDate        = "data"
	ColEventDescription = "descricao"

	ColVoteEventID      = "idVotacao"
	ColVoteValue        = "voto"
	ColVoteLegislatorID = "deputado_id"
)

// Bill is a legislative proposal. Immutable once loaded.
type Bill struct {
	ID          string `json:"id"`
	Type        string `json:"siglatipo"`
	Number      string `json:"numero"`
	Year        int    `json:"ano"`
	Summary     string `json:"ementa"`
	Description string `json:"descricaotipo,omitempty"`
	Theme       string `json:"tema,omitempty"`
}

// Event is a votation: one vote-taking occasion tied to exactly one bill.
type Event struct {
	ID          string `json:"id_evento"`
	BillID      string `json:"id_lei"`
	Date        string `json:"data"`
	Description string `json:"descricao"`
}

// Vote is one legislator's recorded position on one event. Value is free
// text from the source feed ("Sim", "Não", "Obstrução", ...).
type Vote struct {
	EventID      string `json:"id_evento"`
	LegislatorID string `json:"id_deputado"`
	Value        string `json:"voto_tipo"`
}

// Legislator is reference data joined into rankings, not owned by the
// filter pipeline.
type Legislator struct {
	ID     string `json:"id"`
	Name   string `json:"nome_parlamentar"`
	Party  string `json:"sigla_partido"`
	Region string `json:"sigla_uf"`
	Photo  string `json:"url_foto"`
}
