package config

import (
	"fmt"

	"gopkg.in/ini.v1"
)

func loadINI(path string) (*ini.File, error) {
	file, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading config %s: %w", path, err)
	}
	return file, nil
}

func experimentFromINI(path string, cfg *Experiment) error {
	file, err := loadINI(path)
	if err != nil {
		return err
	}

	ds := file.Section("dataset")
	cfg.Dataset.Name = ds.Key("name").MustString(cfg.Dataset.Name)
	cfg.Dataset.Root = ds.Key("root").MustString(cfg.Dataset.Root)
	cfg.Dataset.Split = ds.Key("split").MustString(cfg.Dataset.Split)
	if ds.HasKey("normalize") {
		v, err := ds.Key("normalize").Bool()
		if err != nil {
			return fmt.Errorf("parsing config %s: dataset.normalize: %w", path, err)
		}
		cfg.Dataset.Normalize = &v
	}

	sp := file.Section("spectrum")
	cfg.Spectrum.Lx = sp.Key("lx").MustFloat64(cfg.Spectrum.Lx)
	cfg.Spectrum.Ly = sp.Key("ly").MustFloat64(cfg.Spectrum.Ly)
	cfg.Spectrum.Bounds = sp.Key("bounds").MustString(cfg.Spectrum.Bounds)

	ex := file.Section("export")
	cfg.Export.MeshPath = ex.Key("mesh_path").MustString(cfg.Export.MeshPath)
	cfg.Export.SavePath = ex.Key("save_path").MustString(cfg.Export.SavePath)

	pl := file.Section("plot")
	cfg.Plot.Mode = pl.Key("mode").MustString(cfg.Plot.Mode)
	cfg.Plot.Path = pl.Key("path").MustString(cfg.Plot.Path)

	cfg.Logging.Level = file.Section("logging").Key("level").MustString(cfg.Logging.Level)
	return nil
}

func trainFromINI(path string, cfg *Train) error {
	file, err := loadINI(path)
	if err != nil {
		return err
	}

	tr := file.Section("train")
	cfg.InChannels = tr.Key("in_channels").MustInt(cfg.InChannels)
	cfg.OutChannels = tr.Key("out_channels").MustInt(cfg.OutChannels)
	cfg.Epochs = tr.Key("epochs").MustInt(cfg.Epochs)
	cfg.BatchSize = tr.Key("batch_size").MustInt(cfg.BatchSize)
	cfg.LearningRate = tr.Key("learning_rate").MustFloat64(cfg.LearningRate)

	if err := file.Section("model").MapTo(&cfg.Model); err != nil {
		return fmt.Errorf("parsing config %s: model: %w", path, err)
	}
	return nil
}
