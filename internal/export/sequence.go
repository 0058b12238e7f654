package export

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Sequence записывает каждый кадр src в dir как prefix-table-<номер>, где номер
// начинается с 1 и дополнен нулями до числа цифр в общем количестве кадров.
// Пустой prefix заменяется именем источника. Пути возвращаются в порядке захвата.
//
// ctx проверяется один раз до первой записи: начатый экспорт доводится до конца
// и останавливается только на ошибке записи. После первой ошибки новые файлы
// не запускаются.
func (e *Exporter) Sequence(ctx context.Context, src Source, dir, prefix string) ([]string, error) {
	view, dir, prefix, err := prepare(src, dir, prefix)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	total := view.Len()
	paths := make([]string, total)
	for i := range paths {
		paths[i] = dir + SequenceName(prefix, i+1, total, e.Format)
	}

	log := e.logger().With("entity", src.Name(), "dir", dir)
	log.Info("sequence export started", "frames", total)

	// Отмена вызывающего не доходит до записи, отменяет только сбой.
	g, failed := errgroup.WithContext(context.WithoutCancel(ctx))
	g.SetLimit(max(e.Workers, 1))

	for i := 0; i < total; i++ {
		if failed.Err() != nil {
			break
		}
		img, path := view.At(i).Image(), paths[i]
		g.Go(func() error {
			if failed.Err() != nil {
				return nil
			}
			if err := e.Writer.Write(img, path); err != nil {
				return fmt.Errorf("frame %d: %w", i+1, err)
			}
			log.Debug("frame written", "path", path)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.Info("sequence export finished", "files", total)
	return paths, nil
}
