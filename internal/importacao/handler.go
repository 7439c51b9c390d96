package importacao

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/KromaEnergia/api-vendas/internal/tabelacomissao"
	"github.com/KromaEnergia/api-vendas/internal/utils"
	"github.com/rs/zerolog/hlog"
)

const (
	DownloadURL      = "/api/importacao/template/download"
	tamanhoMaxUpload = 32 << 20
	mimeXLSX         = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type Handler struct {
	Tabelas    *tabelacomissao.Repository
	Importador *Importador
	TempDir    string
}

func NewHandler(tabelas *tabelacomissao.Repository, importador *Importador, tempDir string) *Handler {
	return &Handler{Tabelas: tabelas, Importador: importador, TempDir: tempDir}
}

type TemplateResponse struct {
	Mensagem    string `json:"mensagem"`
	Arquivo     string `json:"arquivo"`
	DownloadURL string `json:"download_url"`
}

func (h *Handler) caminhoTemplate() string {
	return filepath.Join(h.TempDir, ArquivoTemplate)
}

// GET /importacao/template
func (h *Handler) GerarTemplate(w http.ResponseWriter, r *http.Request) {
	tabelas, err := h.Tabelas.ListarTodas()
	if err != nil {
		utils.ResponderFalha(w, r, err, "")
		return
	}
	f, err := GerarTemplate(tabelas)
	if err != nil {
		utils.ResponderFalha(w, r, err, "")
		return
	}
	defer f.Close()

	if err := os.MkdirAll(h.TempDir, 0o755); err != nil {
		utils.ResponderFalha(w, r, err, "")
		return
	}
	caminho := h.caminhoTemplate()
	if err := f.SaveAs(caminho); err != nil {
		utils.ResponderFalha(w, r, err, "")
		return
	}

	utils.ResponderJSON(w, http.StatusOK, TemplateResponse{
		Mensagem:    "Template gerado com sucesso",
		Arquivo:     caminho,
		DownloadURL: DownloadURL,
	})
}

// GET /importacao/template/download
func (h *Handler) BaixarTemplate(w http.ResponseWriter, r *http.Request) {
	caminho := h.caminhoTemplate()
	if _, err := os.Stat(caminho); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			utils.ResponderErro(w, http.StatusNotFound, "Template não encontrado. Gere o template primeiro.")
			return
		}
		utils.ResponderFalha(w, r, err, "")
		return
	}

	w.Header().Set("Content-Type", mimeXLSX)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", ArquivoTemplate))
	http.ServeFile(w, r, caminho)
}

// POST /importacao/vendas
func (h *Handler) ImportarVendas(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(tamanhoMaxUpload); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		utils.ResponderErro(w, http.StatusBadRequest, "Nenhum arquivo foi enviado")
		return
	}
	arquivo, cabecalho, err := r.FormFile("arquivo")
	if err != nil {
		utils.ResponderErro(w, http.StatusBadRequest, "Nenhum arquivo foi enviado")
		return
	}
	defer arquivo.Close()

	nome := filepath.Base(cabecalho.Filename)
	if cabecalho.Filename == "" || nome == "." || nome == string(filepath.Separator) {
		utils.ResponderErro(w, http.StatusBadRequest, "Nenhum arquivo selecionado")
		return
	}
	ext := strings.ToLower(filepath.Ext(nome))
	if ext != ".xlsx" && ext != ".xls" {
		utils.ResponderErro(w, http.StatusBadRequest, "Arquivo deve ser Excel (.xlsx ou .xls)")
		return
	}

	caminho, err := h.salvarUpload(arquivo, nome)
	if err != nil {
		utils.ResponderFalha(w, r, err, "")
		return
	}
	defer func() {
		if err := os.Remove(caminho); err != nil && !errors.Is(err, os.ErrNotExist) {
			hlog.FromRequest(r).Warn().Err(err).Str("arquivo", caminho).Msg("falha ao remover upload")
		}
	}()

	planilha, err := lerArquivo(caminho)
	if err != nil {
		var faltantes *ErrColunasFaltantes
		if errors.As(err, &faltantes) {
			utils.ResponderErro(w, http.StatusBadRequest, faltantes.Error())
			return
		}
		utils.ResponderErro(w, http.StatusBadRequest, "Não foi possível ler o arquivo Excel: "+err.Error())
		return
	}

	res, err := h.Importador.Importar(r.Context(), planilha)
	if err != nil {
		utils.ResponderFalha(w, r, err, "")
		return
	}
	utils.ResponderJSON(w, http.StatusOK, res)
}

// salvarUpload grava o arquivo como TempDir/upload_<AAAAMMDD_HHMMSS>_<nome>.
func (h *Handler) salvarUpload(src io.Reader, nome string) (string, error) {
	if err := os.MkdirAll(h.TempDir, 0o755); err != nil {
		return "", err
	}
	caminho := filepath.Join(h.TempDir, fmt.Sprintf("upload_%s_%s", time.Now().Format("20060102_150405"), nome))
	dst, err := os.Create(caminho)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		_ = os.Remove(caminho)
		return "", err
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(caminho)
		return "", err
	}
	return caminho, nil
}

func lerArquivo(caminho string) (*Planilha, error) {
	f, err := os.Open(caminho)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LerPlanilha(f)
}
