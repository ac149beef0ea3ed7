// Package handler содержит обёртку над колбэком обработки сообщения консьюмера.
//
// ConsumerHandler выполняет колбэк, переводит его ошибки и паники в код
// OutcomeRejectRequeue и останавливает консьюмер (ровно один раз на экземпляр),
// если колбэк упал или сессия хранилища стала непригодной. Перед остановкой
// обработчик выдерживает паузу stopSleepSeconds, чтобы супервизор процессов
// (supervisord и т.п.) считал завершение штатным, а не падением при старте.
package handler
