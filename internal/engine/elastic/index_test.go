package elastic

import (
	"testing"

	"github.com/google/uuid"

	"github.com/annolab/annosearch/internal/domain/dataset"
)

func mappingDataset(t *testing.T) *dataset.Dataset {
	t.Helper()

	prompt, _ := dataset.NewField("prompt", dataset.FieldText)
	screenshot, _ := dataset.NewField("screenshot", dataset.FieldImage)
	rating, err := dataset.NewQuestion(uuid.New(), "quality", dataset.QuestionRating, dataset.QuestionSettings{
		Options: []string{"1", "2", "3"},
	})
	if err != nil {
		t.Fatalf("question: %v", err)
	}
	label, _ := dataset.NewQuestion(uuid.New(), "sentiment", dataset.QuestionLabel, dataset.QuestionSettings{
		Options: []string{"positive", "negative"},
	})
	loss, _ := dataset.NewMetadataProperty("loss", dataset.MetadataFloat, nil, nil, nil)
	model, _ := dataset.NewMetadataProperty("model", dataset.MetadataTerms, nil, nil, nil)
	embedding, _ := dataset.NewVectorSettings("embedding", 384)

	ds, err := dataset.New(
		uuid.New(), "mapping_test",
		[]dataset.Field{prompt, screenshot},
		[]dataset.Question{rating, label},
		[]dataset.MetadataProperty{loss, model},
		[]dataset.VectorSettings{embedding},
	)
	if err != nil {
		t.Fatalf("dataset: %v", err)
	}
	return &ds
}

func TestBuildMappings_Strict(t *testing.T) {
	m := buildMappings(mappingDataset(t))

	if m["dynamic"] != "strict" {
		t.Errorf("expected strict dynamic mapping, got %v", m["dynamic"])
	}
}

func TestBuildMappings_Fields(t *testing.T) {
	m := buildMappings(mappingDataset(t))
	props := m["properties"].(map[string]any)
	fields := props["fields"].(map[string]any)["properties"].(map[string]any)

	if fields["prompt"].(map[string]any)["type"] != "text" {
		t.Errorf("expected text mapping for prompt, got %+v", fields["prompt"])
	}
	screenshot := fields["screenshot"].(map[string]any)
	if screenshot["type"] != "keyword" || screenshot["index"] != false {
		t.Errorf("expected unindexed keyword for image field, got %+v", screenshot)
	}
}

func TestBuildMappings_DenseVector(t *testing.T) {
	m := buildMappings(mappingDataset(t))
	props := m["properties"].(map[string]any)
	vectors := props["vectors"].(map[string]any)["properties"].(map[string]any)
	embedding := vectors["embedding"].(map[string]any)

	if embedding["type"] != "dense_vector" {
		t.Errorf("expected dense_vector, got %v", embedding["type"])
	}
	if embedding["dims"] != 384 {
		t.Errorf("expected dims 384, got %v", embedding["dims"])
	}
	if embedding["index"] != true {
		t.Error("expected indexed vector field")
	}
	if embedding["similarity"] != "l2_norm" {
		t.Errorf("expected l2_norm similarity, got %v", embedding["similarity"])
	}
}

func TestBuildMappings_Metadata(t *testing.T) {
	m := buildMappings(mappingDataset(t))
	props := m["properties"].(map[string]any)
	metadata := props["metadata"].(map[string]any)["properties"].(map[string]any)

	if metadata["loss"].(map[string]any)["type"] != "float" {
		t.Errorf("expected float mapping for loss, got %+v", metadata["loss"])
	}
	if metadata["model"].(map[string]any)["type"] != "keyword" {
		t.Errorf("expected keyword mapping for model, got %+v", metadata["model"])
	}
}

func TestBuildMappings_ResponseTemplates(t *testing.T) {
	m := buildMappings(mappingDataset(t))
	templates := m["dynamic_templates"].([]map[string]any)

	// one status template plus one per question
	if len(templates) != 3 {
		t.Fatalf("expected 3 dynamic templates, got %d", len(templates))
	}

	status := templates[0]["responses_status"].(map[string]any)
	if status["path_match"] != "responses.*.status" {
		t.Errorf("unexpected status template: %+v", status)
	}

	quality := templates[1]["responses_values_quality"].(map[string]any)
	if quality["path_match"] != "responses.*.values.quality" {
		t.Errorf("unexpected quality template: %+v", quality)
	}
	if quality["mapping"].(map[string]any)["type"] != "integer" {
		t.Errorf("expected integer mapping for rating values, got %+v", quality["mapping"])
	}

	sentiment := templates[2]["responses_values_sentiment"].(map[string]any)
	if sentiment["mapping"].(map[string]any)["type"] != "keyword" {
		t.Errorf("expected keyword mapping for label values, got %+v", sentiment["mapping"])
	}
}

func TestBuildMappings_SuggestionProperties(t *testing.T) {
	m := buildMappings(mappingDataset(t))
	props := m["properties"].(map[string]any)
	suggestions := props["suggestions"].(map[string]any)["properties"].(map[string]any)

	quality := suggestions["quality"].(map[string]any)["properties"].(map[string]any)
	if quality["value"].(map[string]any)["type"] != "integer" {
		t.Errorf("expected integer suggestion value for rating, got %+v", quality["value"])
	}
	if quality["score"].(map[string]any)["type"] != "float" {
		t.Errorf("expected float suggestion score, got %+v", quality["score"])
	}
	if quality["agent"].(map[string]any)["type"] != "keyword" {
		t.Errorf("expected keyword agent, got %+v", quality["agent"])
	}
}
