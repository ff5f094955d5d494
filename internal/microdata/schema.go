package microdata

// Column describes one selected column of the raw INEP CSV: its source
// header, the name it carries after ingestion, its type, and a short
// description. The same table backs header validation and the exported
// data dictionary.
type Column struct {
	Source string `yaml:"source"`
	Name   string `yaml:"name"`
	Type   string `yaml:"type"`
	Desc   string `yaml:"description"`
}

// Columns is the subset of the raw microdata retained by the pipeline,
// in ingestion order.
var Columns = []Column{
	{"NU_INSCRICAO", "registration_id", "int", "Unique registration ID"},
	{"NU_ANO", "exam_year", "int", "Exam year"},
	{"TP_SEXO", "sex", "categorical", "Sex"},
	{"TP_COR_RACA", "race_color", "int", "Race/color"},
	{"TP_ST_CONCLUSAO", "hs_completion_status", "int", "HS completion status"},
	{"TP_ESCOLA", "school_type", "int", "HS type"},
	{"TP_ENSINO", "teaching_mode", "int", "HS modality"},
	{"IN_TREINEIRO", "is_tester", "int", "Treineiro flag"},
	{"TP_DEPENDENCIA_ADM_ESC", "school_admin_dependency", "int", "Admin dependency"},
	{"TP_LOCALIZACAO_ESC", "school_location", "int", "Urban/Rural"},
	{"TP_SIT_FUNC_ESC", "school_oper_status", "int", "Operational status"},
	{"CO_PROVA_CN", "code_exam_science", "int", "Science booklet"},
	{"CO_PROVA_CH", "code_exam_humanities", "int", "Humanities booklet"},
	{"CO_PROVA_LC", "code_exam_language", "int", "Language booklet"},
	{"CO_PROVA_MT", "code_exam_math", "int", "Math booklet"},
	{"TP_PRESENCA_CN", "presence_science", "int", "Presence CN"},
	{"TP_PRESENCA_CH", "presence_humanities", "int", "Presence CH"},
	{"TP_PRESENCA_LC", "presence_language", "int", "Presence LC"},
	{"TP_PRESENCA_MT", "presence_math", "int", "Presence MT"},
	{"TX_RESPOSTAS_CN", "answers_science", "string", "Answers CN"},
	{"TX_RESPOSTAS_CH", "answers_humanities", "string", "Answers CH"},
	{"TX_RESPOSTAS_LC", "answers_language", "string", "Answers LC"},
	{"TX_RESPOSTAS_MT", "answers_math", "string", "Answers MT"},
	{"TX_GABARITO_CN", "key_science", "string", "Key CN"},
	{"TX_GABARITO_CH", "key_humanities", "string", "Key CH"},
	{"TX_GABARITO_LC", "key_language", "string", "Key LC"},
	{"TX_GABARITO_MT", "key_math", "string", "Key MT"},
	{"NU_NOTA_CN", "score_science", "float", "Score CN"},
	{"NU_NOTA_CH", "score_humanities", "float", "Score CH"},
	{"NU_NOTA_LC", "score_language", "float", "Score LC"},
	{"NU_NOTA_MT", "score_math", "float", "Score MT"},
	{"Q006", "family_income_bracket", "categorical", "Income bracket"},
	{"Q027", "school_funding_src", "categorical", "Funding source"},
}
